package notify

import (
	"context"
	"errors"
	"net/http"

	"github.com/hamed0406/uptimealert/internal/domain"
)

type Slack struct {
	name    string
	Webhook string
	Client  *http.Client
}

func NewSlack(name, webhook string, client *http.Client) (*Slack, error) {
	if webhook == "" {
		return nil, malformed(name, errors.New("url is required"))
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &Slack{name: name, Webhook: webhook, Client: client}, nil
}

type slackAttachment struct {
	Color string `json:"color"`
	Text  string `json:"text"`
}

type slackPayload struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

func (s *Slack) Name() string { return s.name }

func (s *Slack) Send(ctx context.Context, ev domain.Event) error {
	color := "danger"
	if ev.Up {
		color = "good"
	}
	return postJSON(ctx, s.Client, s.name, s.Webhook, nil, slackPayload{
		Text:        "*" + ev.Title + "*",
		Attachments: []slackAttachment{{Color: color, Text: ev.Body}},
	})
}
