package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv overrides cfg with values from the environment.
//
// Supported variables:
//   - TARGET_URL, CHECK_INTERVAL_MS, REQUEST_TIMEOUT_MS
//   - LOG_DIR, LOG_LEVEL
//   - STATUS_ADDR, ADMIN_API_KEYS (comma separated)
//   - PUSHBULLET_ENABLED, PUSHBULLET_ACCESS_TOKEN
//   - WEBHOOK_ENABLED, WEBHOOK_URL
//   - SLACK_ENABLED, SLACK_WEBHOOK_URL
//   - TELEGRAM_ENABLED, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("TARGET_URL"); v != "" {
		cfg.TargetURL = strings.TrimSpace(v)
	}
	if err := setMillisEnv("CHECK_INTERVAL_MS", &cfg.CheckInterval); err != nil {
		return err
	}
	if err := setMillisEnv("REQUEST_TIMEOUT_MS", &cfg.RequestTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("STATUS_ADDR"); v != "" {
		cfg.StatusAddr = v
	}
	if v := os.Getenv("ADMIN_API_KEYS"); v != "" {
		cfg.AdminAPIKeys = splitList(v)
	}

	return applyChannelEnv(cfg)
}

func applyChannelEnv(cfg *Config) error {
	if cfg.Channels == nil {
		cfg.Channels = map[string]ChannelConfig{}
	}
	specs := []struct {
		name   string
		fields map[string]func(*ChannelConfig, string)
	}{
		{"pushbullet", map[string]func(*ChannelConfig, string){
			"PUSHBULLET_ACCESS_TOKEN": func(c *ChannelConfig, v string) { c.AccessToken = v },
		}},
		{"webhook", map[string]func(*ChannelConfig, string){
			"WEBHOOK_URL": func(c *ChannelConfig, v string) { c.URL = v },
		}},
		{"slack", map[string]func(*ChannelConfig, string){
			"SLACK_WEBHOOK_URL": func(c *ChannelConfig, v string) { c.URL = v },
		}},
		{"telegram", map[string]func(*ChannelConfig, string){
			"TELEGRAM_BOT_TOKEN": func(c *ChannelConfig, v string) { c.BotToken = v },
			"TELEGRAM_CHAT_ID":   func(c *ChannelConfig, v string) { c.ChatID = v },
		}},
	}

	for _, s := range specs {
		ch, existed := cfg.Channels[s.name]
		touched := false

		enabledVar := strings.ToUpper(s.name) + "_ENABLED"
		if v := os.Getenv(enabledVar); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", enabledVar, err)
			}
			ch.Enabled = b
			touched = true
		}
		for key, set := range s.fields {
			if v := os.Getenv(key); v != "" {
				set(&ch, strings.TrimSpace(v))
				touched = true
			}
		}
		if touched || existed {
			cfg.Channels[s.name] = ch
		}
	}
	return nil
}

func setMillisEnv(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	ms, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
