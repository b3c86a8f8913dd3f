package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimealert/internal/domain"
	"github.com/hamed0406/uptimealert/internal/metrics"
	"github.com/hamed0406/uptimealert/internal/notify"
	"github.com/hamed0406/uptimealert/internal/probe"
	"github.com/hamed0406/uptimealert/internal/repo"
)

const (
	TitleUp   = "✅ Website Back Online"
	TitleDown = "🚨 Website Down Alert"

	timeLayout = "2006-01-02 15:04:05 MST"
)

// Dispatcher delivers a transition event to the configured channels.
type Dispatcher interface {
	Notify(ctx context.Context, ev domain.Event) notify.Report
}

// Monitor owns the up/down belief about a single target and turns probe
// outcomes into edge-triggered notifications. The state starts optimistic
// (up), so a failing first probe alerts immediately.
type Monitor struct {
	log        *zap.Logger
	target     string
	checker    probe.Checker
	dispatcher Dispatcher
	history    repo.TransitionStore
	now        func() time.Time

	mu    sync.Mutex
	state domain.State

	inflight sync.WaitGroup
}

type Option func(*Monitor)

// WithHistory records every transition event in s.
func WithHistory(s repo.TransitionStore) Option {
	return func(m *Monitor) { m.history = s }
}

func New(log *zap.Logger, target string, checker probe.Checker, dispatcher Dispatcher, opts ...Option) *Monitor {
	m := &Monitor{
		log:        log,
		target:     target,
		checker:    checker,
		dispatcher: dispatcher,
		now:        time.Now,
		state:      domain.StateUp,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Probe checks the target once. When the classification differs from the
// current state, the state is switched before the event is handed to the
// dispatcher in the background. It reports the event and whether a
// transition happened. Probe is safe for concurrent use.
func (m *Monitor) Probe(ctx context.Context) (domain.Event, bool) {
	m.log.Debug("probe_attempt", zap.String("url", m.target))

	out := m.checker.Check(ctx, m.target)
	observed := probe.Classify(out)
	metrics.ObserveProbe(observed == domain.StateUp, out.Latency)

	m.log.Info("probe_result",
		zap.String("url", m.target),
		zap.Stringer("observed", observed),
		zap.Int("status", out.StatusCode),
		zap.String("reason", out.Reason()),
		zap.String("detail", out.Detail),
		zap.Duration("latency", out.Latency),
	)

	ev, changed := m.transition(ctx, observed, out)
	if !changed {
		m.log.Debug("no_transition", zap.Stringer("state", observed))
		return domain.Event{}, false
	}

	m.log.Warn("transition_detected",
		zap.String("url", m.target),
		zap.Stringer("to", observed),
		zap.String("reason", ev.Reason),
	)
	metrics.IncTransition(observed.String())
	m.dispatch(ctx, ev)
	return ev, true
}

// transition compares and swaps the state under the lock so overlapping
// probes produce a single event per change. History is appended under the
// same lock to keep it in transition order.
func (m *Monitor) transition(ctx context.Context, observed domain.State, out probe.Outcome) (domain.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if observed == m.state {
		return domain.Event{}, false
	}
	m.state = observed
	metrics.SetTargetUp(observed == domain.StateUp)
	ev := m.render(observed, out)
	if m.history != nil {
		if err := m.history.Append(context.WithoutCancel(ctx), ev); err != nil {
			m.log.Warn("history_append_failed", zap.Error(err))
		}
	}
	return ev, true
}

func (m *Monitor) render(state domain.State, out probe.Outcome) domain.Event {
	ts := m.now()
	ev := domain.Event{
		Up:        state == domain.StateUp,
		Target:    m.target,
		Timestamp: ts,
	}
	stamp := ts.Local().Format(timeLayout)

	if ev.Up {
		ev.Title = TitleUp
		ev.Body = fmt.Sprintf("Your website is back online.\nURL: %s\nTime: %s", m.target, stamp)
		return ev
	}

	ev.Title = TitleDown
	ev.Reason = out.Reason()
	var b strings.Builder
	fmt.Fprintf(&b, "Your website is unreachable.\nURL: %s\nTime: %s\nReason: %s", m.target, stamp, ev.Reason)
	if out.Detail != "" {
		fmt.Fprintf(&b, "\nDetail: %s", out.Detail)
	}
	ev.Body = b.String()
	return ev
}

// dispatch is fire-and-forget relative to the probe loop. Sends outlive
// the probe's context; the dispatcher bounds each one.
func (m *Monitor) dispatch(ctx context.Context, ev domain.Event) {
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("dispatch_panic", zap.Any("panic", r), zap.String("title", ev.Title))
			}
		}()
		rep := m.dispatcher.Notify(context.WithoutCancel(ctx), ev)
		if err := rep.Err(); err != nil {
			m.log.Warn("dispatch_incomplete",
				zap.String("title", ev.Title),
				zap.Int("failed", rep.Failed()),
				zap.Int("channels", len(rep.Results)),
			)
		}
	}()
}

// Wait blocks until in-flight dispatches finish or ctx is done.
func (m *Monitor) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
