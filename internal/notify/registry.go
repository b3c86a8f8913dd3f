package notify

import (
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/multierr"

	"github.com/hamed0406/uptimealert/internal/config"
)

// Factory builds a channel registered under name from its configuration.
type Factory func(name string, cfg config.ChannelConfig, client *http.Client) (Channel, error)

var factories = map[string]Factory{
	"pushbullet": func(name string, cfg config.ChannelConfig, client *http.Client) (Channel, error) {
		return NewPushbullet(name, cfg.AccessToken, client)
	},
	"webhook": func(name string, cfg config.ChannelConfig, client *http.Client) (Channel, error) {
		return NewWebhook(name, cfg.URL, cfg.Username, client)
	},
	"slack": func(name string, cfg config.ChannelConfig, client *http.Client) (Channel, error) {
		return NewSlack(name, cfg.URL, client)
	},
	"telegram": func(name string, cfg config.ChannelConfig, client *http.Client) (Channel, error) {
		return NewTelegram(name, cfg.BotToken, cfg.ChatID, cfg.URL, client)
	},
}

// Kinds lists the supported channel kinds.
func Kinds() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build resolves the channel registry once at startup. Every entry must
// name a known kind; enabled entries must also carry valid credentials.
// The returned channels are ordered by name.
func Build(channels map[string]config.ChannelConfig, client *http.Client) ([]Channel, error) {
	if client == nil {
		client = NewHTTPClient()
	}
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		out  []Channel
		errs error
	)
	for _, name := range names {
		cfg := channels[name]
		kind := cfg.KindFor(name)
		factory, ok := factories[kind]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("channel %q: unknown kind %q (supported: %v)", name, kind, Kinds()))
			continue
		}
		if !cfg.Enabled {
			continue
		}
		ch, err := factory(name, cfg, client)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("channel %q: %w", name, err))
			continue
		}
		out = append(out, ch)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
