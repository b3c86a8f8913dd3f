package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// Channel delivers a rendered event through one provider. Implementations
// make exactly one outbound call per Send and never retry.
type Channel interface {
	Name() string
	Send(ctx context.Context, ev domain.Event) error
}

// Kind classifies a failed send.
type Kind int

const (
	KindAuthenticationRejected Kind = iota + 1
	KindNetworkUnreachable
	KindProviderRejected
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindAuthenticationRejected:
		return "authentication_rejected"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindProviderRejected:
		return "provider_rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// SendError is returned by every Channel on failure.
type SendError struct {
	Channel    string
	Kind       Kind
	StatusCode int // set for provider and authentication rejections
	Err        error
}

func (e *SendError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Channel, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SendError) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err, or 0 if err is not a
// SendError.
func KindOf(err error) Kind {
	var se *SendError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func malformed(channel string, err error) error {
	return &SendError{Channel: channel, Kind: KindMalformed, Err: err}
}

// ChannelFunc adapts a function into a Channel.
func ChannelFunc(name string, send func(ctx context.Context, ev domain.Event) error) Channel {
	return channelFunc{name: name, send: send}
}

type channelFunc struct {
	name string
	send func(ctx context.Context, ev domain.Event) error
}

func (c channelFunc) Name() string { return c.name }

func (c channelFunc) Send(ctx context.Context, ev domain.Event) error { return c.send(ctx, ev) }
