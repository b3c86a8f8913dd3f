// cmd/preflight/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/hamed0406/uptimealert/internal/config"
	"github.com/hamed0406/uptimealert/internal/notify"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "✖", e)
		}
		os.Exit(1)
	}
	ok("TARGET_URL=" + cfg.TargetURL)
	ok(fmt.Sprintf("interval=%s timeout=%s", cfg.CheckInterval, cfg.RequestTimeout))
	if cfg.RequestTimeout >= cfg.CheckInterval {
		warn("request timeout is not shorter than the check interval; probes will overlap")
	}

	channels, err := notify.Build(cfg.Channels, notify.NewHTTPClient())
	if err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "✖", e)
		}
		os.Exit(1)
	}
	if len(channels) == 0 {
		warn("no notification channels enabled; transitions will only be logged")
	}
	for _, ch := range channels {
		ok("channel " + ch.Name())
	}

	if cfg.StatusAddr == "" {
		warn("STATUS_ADDR empty; operator API and /metrics are disabled")
	} else {
		ok("STATUS_ADDR=" + cfg.StatusAddr)
		if len(cfg.AdminAPIKeys) == 0 {
			warn("ADMIN_API_KEYS is empty (test notifications will 403)")
		}
		for _, k := range cfg.AdminAPIKeys {
			if strings.ContainsAny(k, " \t") {
				warn("ADMIN_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
				break
			}
		}
	}

	ok("preflight passed")
}
