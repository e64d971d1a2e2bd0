package dispatcher

import (
	"log/slog"
	"time"
)

// Config holds dispatcher configuration.
type Config struct {
	PollInterval time.Duration
	Lookahead    time.Duration // dispatch schedules due within this window
	StaleAfter   time.Duration // reclaim claims idle for this long
	DispatcherID string
	Clock        func() time.Time
	Retry        RetryConfig
	Logger       *slog.Logger
}

// Option configures a Dispatcher.
type Option interface {
	Apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) Apply(c *Config) { f(c) }

// PollInterval sets how often the dispatcher checks for due schedules.
func PollInterval(d time.Duration) Option {
	return optionFunc(func(c *Config) {
		c.PollInterval = d
	})
}

// Lookahead dispatches schedules due within the given window ahead of now.
// Zero means only schedules already due.
func Lookahead(d time.Duration) Option {
	return optionFunc(func(c *Config) {
		c.Lookahead = d
	})
}

// StaleAfter sets how long an untouched claim survives before it is released.
func StaleAfter(d time.Duration) Option {
	return optionFunc(func(c *Config) {
		c.StaleAfter = d
	})
}

// DispatcherID overrides the generated dispatcher identity.
func DispatcherID(id string) Option {
	return optionFunc(func(c *Config) {
		c.DispatcherID = id
	})
}

// Clock overrides the dispatcher clock. Used in tests for determinism.
func Clock(nowFn func() time.Time) Option {
	return optionFunc(func(c *Config) {
		c.Clock = nowFn
	})
}

// ClaimRetry overrides the backoff settings for transient claim failures.
func ClaimRetry(cfg RetryConfig) Option {
	return optionFunc(func(c *Config) {
		c.Retry = cfg
	})
}

// Logger overrides the dispatcher logger. Defaults to slog.Default().
func Logger(l *slog.Logger) Option {
	return optionFunc(func(c *Config) {
		c.Logger = l
	})
}
