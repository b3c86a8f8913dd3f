package notify

import (
	"context"
	"errors"
	"net/http"

	"github.com/hamed0406/uptimealert/internal/domain"
)

const pushbulletAPIURL = "https://api.pushbullet.com/v2/pushes"

// Pushbullet sends a push note to every device of the token's account.
type Pushbullet struct {
	name        string
	AccessToken string
	Endpoint    string
	Client      *http.Client
}

func NewPushbullet(name, accessToken string, client *http.Client) (*Pushbullet, error) {
	if accessToken == "" {
		return nil, malformed(name, errors.New("access_token is required"))
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &Pushbullet{name: name, AccessToken: accessToken, Endpoint: pushbulletAPIURL, Client: client}, nil
}

type pushbulletNote struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (p *Pushbullet) Name() string { return p.name }

func (p *Pushbullet) Send(ctx context.Context, ev domain.Event) error {
	return postJSON(ctx, p.Client, p.name, p.Endpoint,
		map[string]string{"Authorization": "Bearer " + p.AccessToken},
		pushbulletNote{Type: "note", Title: ev.Title, Body: ev.Body},
	)
}
