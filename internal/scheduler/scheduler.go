package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// Prober is driven once per tick.
type Prober interface {
	Probe(ctx context.Context) (domain.Event, bool)
}

// Scheduler runs one probe at startup and then one per interval. Probes
// are not serialized: a slow probe may overlap the next tick. The interval
// has one-second granularity.
type Scheduler struct {
	Logger   *zap.Logger
	Prober   Prober
	Interval time.Duration
}

func New(logger *zap.Logger, p Prober, interval time.Duration) *Scheduler {
	return &Scheduler{Logger: logger, Prober: p, Interval: interval}
}

// Run blocks until ctx is cancelled, then waits for in-flight probes.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}
	logger := cronLogger{s.Logger.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
	c.Schedule(cron.Every(s.Interval), cron.FuncJob(func() { s.runOnce(ctx) }))
	c.Start()
	s.Logger.Info("scheduler_started", zap.Duration("interval", s.Interval))

	// immediate pass
	var first sync.WaitGroup
	first.Add(1)
	go func() {
		defer first.Done()
		s.runOnce(ctx)
	}()

	<-ctx.Done()
	<-c.Stop().Done()
	first.Wait()
	s.Logger.Info("scheduler_stopped")
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	// in-flight probes are never cancelled; the checker bounds them
	s.Prober.Probe(context.WithoutCancel(ctx))
}

// cronLogger routes cron's own logging into zap. Routine scheduling
// messages go to debug.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron_"+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron_"+msg, append(keysAndValues, "error", err)...)
}
