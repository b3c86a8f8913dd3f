package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

// DefaultTimeout bounds a single probe when no timeout is configured.
const DefaultTimeout = 15 * time.Second

type HTTPChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{Failure: FailureOther, Detail: err.Error()}
	}

	resp, err := h.Client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return Outcome{Failure: classifyErr(err), Detail: err.Error(), Latency: latency}
	}
	defer resp.Body.Close()
	// drain a little so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	out := Outcome{StatusCode: resp.StatusCode, Latency: latency}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Failure = FailureStatus
		out.Detail = resp.Status
	}
	return out
}

func classifyErr(err error) Failure {
	var (
		ne     net.Error
		dnsErr *net.DNSError
		opErr  *net.OpError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return FailureTimeout
	case errors.As(err, &dnsErr), errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return FailureConnection
	default:
		return FailureOther
	}
}
