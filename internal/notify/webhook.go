package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// Embed colors for recovered and failing targets.
const (
	ColorUp   = 0x2ECC71
	ColorDown = 0xE74C3C
)

// Webhook posts a Discord-compatible embed message.
type Webhook struct {
	name     string
	URL      string
	Username string
	Client   *http.Client
}

func NewWebhook(name, url, username string, client *http.Client) (*Webhook, error) {
	if url == "" {
		return nil, malformed(name, errors.New("url is required"))
	}
	if username == "" {
		username = "Uptime Alert"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &Webhook{name: name, URL: url, Username: username, Client: client}, nil
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []webhookEmbed `json:"embeds"`
}

func (w *Webhook) Name() string { return w.name }

func (w *Webhook) Send(ctx context.Context, ev domain.Event) error {
	color := ColorDown
	if ev.Up {
		color = ColorUp
	}
	embed := webhookEmbed{Title: ev.Title, Description: ev.Body, Color: color}
	if !ev.Timestamp.IsZero() {
		embed.Timestamp = ev.Timestamp.UTC().Format(time.RFC3339)
	}
	return postJSON(ctx, w.Client, w.name, w.URL, nil, webhookPayload{
		Username: w.Username,
		Embeds:   []webhookEmbed{embed},
	})
}
