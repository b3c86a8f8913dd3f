package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Defaults. The check interval defaults to one minute.
const (
	DefaultTargetURL      = "https://example.com"
	DefaultCheckInterval  = 60 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultLogDir         = "logs"
	DefaultLogLevel       = "info"
	DefaultTestRPM        = 6
	DefaultTestBurst      = 2
)

// ChannelConfig configures one notification channel. Kind selects the
// provider; when empty the channel's name is used as its kind.
type ChannelConfig struct {
	Kind        string `yaml:"kind"`
	Enabled     bool   `yaml:"enabled"`
	AccessToken string `yaml:"access_token"` // pushbullet
	URL         string `yaml:"url"`          // webhook, slack
	BotToken    string `yaml:"bot_token"`    // telegram
	ChatID      string `yaml:"chat_id"`      // telegram
	Username    string `yaml:"username"`     // webhook display name
}

// KindFor returns the provider kind for the channel registered under name.
func (c ChannelConfig) KindFor(name string) string {
	if k := strings.TrimSpace(c.Kind); k != "" {
		return strings.ToLower(k)
	}
	return strings.ToLower(name)
}

type Config struct {
	TargetURL      string        `yaml:"target_url"`
	CheckInterval  time.Duration `yaml:"check_interval"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	LogDir   string `yaml:"log_dir"`   // rotating log file directory
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Operator HTTP surface; empty disables it.
	StatusAddr   string   `yaml:"status_addr"`
	AdminAPIKeys []string `yaml:"admin_api_keys"`
	TestRPM      int      `yaml:"test_rpm"`
	TestBurst    int      `yaml:"test_burst"`

	Channels map[string]ChannelConfig `yaml:"channels"`
}

func Default() Config {
	return Config{
		TargetURL:      DefaultTargetURL,
		CheckInterval:  DefaultCheckInterval,
		RequestTimeout: DefaultRequestTimeout,
		LogDir:         DefaultLogDir,
		LogLevel:       DefaultLogLevel,
		TestRPM:        DefaultTestRPM,
		TestBurst:      DefaultTestBurst,
		Channels:       map[string]ChannelConfig{},
	}
}

// Load builds a Config from defaults, the optional YAML file at path and
// the environment, in increasing order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		c, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = c
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var err error
	if e := ValidateTargetURL(c.TargetURL); e != nil {
		err = multierr.Append(err, e)
	}
	if c.CheckInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("check interval must be positive, got %v", c.CheckInterval))
	}
	if c.RequestTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout))
	}
	if _, e := zapcore.ParseLevel(c.LogLevel); e != nil {
		err = multierr.Append(err, fmt.Errorf("log level: %w", e))
	}
	for name := range c.Channels {
		if strings.TrimSpace(name) == "" {
			err = multierr.Append(err, errors.New("channel with empty name"))
		}
	}
	return err
}

// EnabledChannels returns the enabled subset of the channel registry.
func (c Config) EnabledChannels() map[string]ChannelConfig {
	out := make(map[string]ChannelConfig, len(c.Channels))
	for name, ch := range c.Channels {
		if ch.Enabled {
			out[name] = ch
		}
	}
	return out
}

// ValidateTargetURL accepts only absolute http(s) URLs with a host.
func ValidateTargetURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("target url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("target url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("target url %q: scheme must be http or https", raw)
	}
	if u.Host == "" || u.Hostname() == "" {
		return fmt.Errorf("target url %q: missing host", raw)
	}
	return nil
}
