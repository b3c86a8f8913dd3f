package repo

import (
	"context"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// TransitionStore keeps the transition events seen by this process.
type TransitionStore interface {
	Append(ctx context.Context, ev domain.Event) error
	// Recent returns up to n events, newest first.
	Recent(ctx context.Context, n int) ([]domain.Event, error)
}
