package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// Failure names why a probe did not produce a 2xx response.
type Failure int

const (
	FailureNone Failure = iota
	FailureTimeout
	FailureConnection
	FailureStatus
	FailureOther
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureTimeout:
		return "timeout"
	case FailureConnection:
		return "connection-error"
	case FailureStatus:
		return "non-2xx-status"
	default:
		return "other"
	}
}

// Outcome is the result of a single probe.
//
// StatusCode is 0 whenever no response was received. Detail carries the
// underlying transport error text, if any.
type Outcome struct {
	StatusCode int
	Failure    Failure
	Detail     string
	Latency    time.Duration
}

// Reason renders the outcome the way alerts and logs report it.
func (o Outcome) Reason() string {
	switch o.Failure {
	case FailureNone:
		return "ok"
	case FailureStatus:
		return fmt.Sprintf("non-2xx-status(%d)", o.StatusCode)
	default:
		return o.Failure.String()
	}
}

// Classify maps an outcome onto the availability state machine. Only a
// received response with a status in [200,300) counts as up.
func Classify(o Outcome) domain.State {
	if o.Failure == FailureNone && o.StatusCode >= 200 && o.StatusCode < 300 {
		return domain.StateUp
	}
	return domain.StateDown
}

// Checker performs a single reachability check for a target URL.
type Checker interface {
	Check(ctx context.Context, target string) Outcome
}
