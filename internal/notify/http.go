package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultSendTimeout bounds a single provider call.
const DefaultSendTimeout = 10 * time.Second

// NewHTTPClient returns the client shared by the HTTP-based channels.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultSendTimeout}
}

// postJSON performs one POST and maps the result onto SendError kinds.
func postJSON(ctx context.Context, client *http.Client, channel, url string, headers map[string]string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return malformed(channel, fmt.Errorf("marshal payload: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return malformed(channel, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &SendError{Channel: channel, Kind: KindNetworkUnreachable, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	return statusError(channel, resp.StatusCode)
}

func statusError(channel string, code int) error {
	switch {
	case code/100 == 2:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &SendError{Channel: channel, Kind: KindAuthenticationRejected, StatusCode: code}
	default:
		return &SendError{Channel: channel, Kind: KindProviderRejected, StatusCode: code}
	}
}
