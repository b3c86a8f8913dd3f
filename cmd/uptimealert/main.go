package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimealert/internal/config"
	"github.com/hamed0406/uptimealert/internal/httpapi"
	apimw "github.com/hamed0406/uptimealert/internal/httpapi/middleware"
	"github.com/hamed0406/uptimealert/internal/logging"
	"github.com/hamed0406/uptimealert/internal/monitor"
	"github.com/hamed0406/uptimealert/internal/notify"
	"github.com/hamed0406/uptimealert/internal/probe"
	"github.com/hamed0406/uptimealert/internal/repo/memory"
	"github.com/hamed0406/uptimealert/internal/scheduler"
)

const drainTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file")
	targetURL := flag.String("url", "", "target URL to monitor")
	interval := flag.Duration("interval", 0, "check interval (e.g. 30s)")
	timeout := flag.Duration("timeout", 0, "per-probe request timeout")
	logDir := flag.String("log-dir", "", "directory for rotating log file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	statusAddr := flag.String("status-addr", "", "operator HTTP listen address (empty disables)")
	flag.Parse()

	// Only flags given on the command line override file and env values.
	var ov config.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			ov.TargetURL = targetURL
		case "interval":
			ov.CheckInterval = interval
		case "timeout":
			ov.RequestTimeout = timeout
		case "log-dir":
			ov.LogDir = logDir
		case "log-level":
			ov.LogLevel = logLevel
		case "status-addr":
			ov.StatusAddr = statusAddr
		}
	})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalConfig(err)
	}
	ov.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fatalConfig(err)
	}
	channels, err := notify.Build(cfg.Channels, notify.NewHTTPClient())
	if err != nil {
		fatalConfig(err)
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel, os.Stdout)
	if err != nil {
		fatalConfig(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := notify.NewDispatcher(logger, channels, notify.DefaultSendTimeout)
	history := memory.New(memory.DefaultCapacity)
	mon := monitor.New(logger, cfg.TargetURL, probe.NewHTTPChecker(cfg.RequestTimeout), dispatcher,
		monitor.WithHistory(history))

	logger.Info("monitor_start",
		zap.String("target", cfg.TargetURL),
		zap.Duration("interval", cfg.CheckInterval),
		zap.Duration("timeout", cfg.RequestTimeout),
		zap.Strings("channels", dispatcher.Channels()),
	)

	var srv *http.Server
	if cfg.StatusAddr != "" {
		api := httpapi.NewServer(logger, cfg.TargetURL, dispatcher,
			apimw.Keys{Admin: cfg.AdminAPIKeys}, cfg.TestRPM, cfg.TestBurst)
		api.History = history
		srv = &http.Server{
			Addr:              cfg.StatusAddr,
			Handler:           api.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.StatusAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api_listen_failed", zap.Error(err))
				stop()
			}
		}()
	}

	if err := scheduler.New(logger, mon, cfg.CheckInterval).Run(ctx); err != nil {
		logger.Error("scheduler_failed", zap.Error(err))
	}

	logger.Info("shutdown_start")
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if srv != nil {
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Warn("api_shutdown", zap.Error(err))
		}
	}
	if err := mon.Wait(drainCtx); err != nil {
		logger.Warn("dispatch_drain_timeout", zap.Error(err))
	}
	logger.Info("shutdown_complete")
}

func fatalConfig(err error) {
	fmt.Fprintln(os.Stderr, "config error:", err)
	os.Exit(1)
}
