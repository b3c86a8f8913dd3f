package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"

	tele "gopkg.in/telebot.v4"

	"github.com/hamed0406/uptimealert/internal/domain"
)

const telegramAPIURL = "https://api.telegram.org"

// chatRecipient accepts numeric chat IDs as well as @channel names.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// Telegram sends messages through the Bot API. The bot runs offline: it
// never polls for updates and makes no calls at construction time.
type Telegram struct {
	name string
	bot  *tele.Bot
	chat chatRecipient
}

func NewTelegram(name, botToken, chatID, apiURL string, client *http.Client) (*Telegram, error) {
	if botToken == "" {
		return nil, malformed(name, errors.New("bot_token is required"))
	}
	if chatID == "" {
		return nil, malformed(name, errors.New("chat_id is required"))
	}
	if apiURL == "" {
		apiURL = telegramAPIURL
	}
	if client == nil {
		client = NewHTTPClient()
	}
	bot, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   botToken,
		Client:  client,
		Offline: true,
	})
	if err != nil {
		return nil, malformed(name, fmt.Errorf("create bot: %w", err))
	}
	return &Telegram{name: name, bot: bot, chat: chatRecipient(chatID)}, nil
}

func (t *Telegram) Name() string { return t.name }

func (t *Telegram) Send(ctx context.Context, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return &SendError{Channel: t.name, Kind: KindNetworkUnreachable, Err: err}
	}
	text := fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(ev.Title), html.EscapeString(ev.Body))
	_, err := t.bot.Send(t.chat, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
	if err != nil {
		return t.classify(err)
	}
	return nil
}

func (t *Telegram) classify(err error) error {
	var (
		apiErr *tele.Error
		urlErr *url.Error
		netErr net.Error
	)
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return &SendError{Channel: t.name, Kind: KindAuthenticationRejected, StatusCode: apiErr.Code, Err: err}
		}
		return &SendError{Channel: t.name, Kind: KindProviderRejected, StatusCode: apiErr.Code, Err: err}
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return &SendError{Channel: t.name, Kind: KindNetworkUnreachable, Err: err}
	default:
		return &SendError{Channel: t.name, Kind: KindProviderRejected, Err: err}
	}
}
