package config

import "time"

// Overrides carries values set explicitly on the command line. Nil fields
// leave the loaded configuration untouched.
type Overrides struct {
	TargetURL      *string
	CheckInterval  *time.Duration
	RequestTimeout *time.Duration
	LogDir         *string
	LogLevel       *string
	StatusAddr     *string
}

// Apply gives command-line values the highest precedence.
func (o Overrides) Apply(cfg *Config) {
	if o.TargetURL != nil {
		cfg.TargetURL = *o.TargetURL
	}
	if o.CheckInterval != nil {
		cfg.CheckInterval = *o.CheckInterval
	}
	if o.RequestTimeout != nil {
		cfg.RequestTimeout = *o.RequestTimeout
	}
	if o.LogDir != nil {
		cfg.LogDir = *o.LogDir
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.StatusAddr != nil {
		cfg.StatusAddr = *o.StatusAddr
	}
}
