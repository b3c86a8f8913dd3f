package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimealert/internal/domain"
	"github.com/hamed0406/uptimealert/internal/metrics"
)

// Result is the outcome of one channel's send attempt.
type Result struct {
	Channel  string        `json:"channel"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report collects the per-channel results of a single dispatch.
type Report struct {
	Results []Result `json:"results"`
}

// Err combines every channel failure, or returns nil.
func (r Report) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, res.Err)
	}
	return err
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Dispatcher fans an event out to every enabled channel.
type Dispatcher struct {
	log      *zap.Logger
	channels []Channel
	timeout  time.Duration
}

func NewDispatcher(log *zap.Logger, channels []Channel, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Dispatcher{log: log, channels: channels, timeout: timeout}
}

// Channels returns the names of the channels in dispatch order.
func (d *Dispatcher) Channels() []string {
	out := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		out = append(out, ch.Name())
	}
	return out
}

// Notify attempts every channel exactly once, concurrently. A failing or
// panicking channel never prevents the others from being attempted; all
// failures are reported in the returned Report and logged.
func (d *Dispatcher) Notify(ctx context.Context, ev domain.Event) Report {
	if len(d.channels) == 0 {
		d.log.Info("dispatch_no_channels", zap.String("title", ev.Title))
		return Report{}
	}

	results := make([]Result, len(d.channels))
	var wg sync.WaitGroup
	for i, ch := range d.channels {
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			results[i] = d.send(ctx, ch, ev)
		}(i, ch)
	}
	wg.Wait()

	rep := Report{Results: results}
	d.log.Info("dispatch_done",
		zap.String("title", ev.Title),
		zap.Int("channels", len(results)),
		zap.Int("failed", rep.Failed()),
	)
	return rep
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, ev domain.Event) (res Result) {
	name := ch.Name()
	res.Channel = name

	sctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s: panic: %v", name, r)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			res.Error = res.Err.Error()
			d.log.Warn("dispatch_channel_failed",
				zap.String("channel", name),
				zap.String("kind", KindOf(res.Err).String()),
				zap.Duration("took", res.Duration),
				zap.Error(res.Err),
			)
		} else {
			d.log.Info("dispatch_channel_sent",
				zap.String("channel", name),
				zap.Duration("took", res.Duration),
			)
		}
		metrics.IncNotification(name, res.Err == nil)
	}()

	d.log.Debug("dispatch_channel_attempt", zap.String("channel", name), zap.Bool("up", ev.Up))
	res.Err = ch.Send(sctx, ev)
	return res
}
