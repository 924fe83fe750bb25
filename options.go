package gopms

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures atom list parsing.
type Option func(*listConfig) error

// listConfig holds all ParseList configuration.
type listConfig struct {
	maxErrors      int
	noBlockers     bool
	requireVersion bool

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithMaxErrors stops parsing after n rejected lines. Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(c *listConfig) error {
		if n < 0 {
			return errors.New("max errors must not be negative")
		}
		c.maxErrors = n
		return nil
	}
}

// WithoutBlockers rejects atoms carrying a "!" or "!!" blocker.
func WithoutBlockers() Option {
	return func(c *listConfig) error {
		c.noBlockers = true
		return nil
	}
}

// WithRequireVersion rejects atoms without a version operator.
func WithRequireVersion() Option {
	return func(c *listConfig) error {
		c.requireVersion = true
		return nil
	}
}

// WithLogger sets a structured logger for list parsing diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "pms")
//	entries, err := ParseList(ctx, r, WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *listConfig) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *listConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func newListConfig(opts ...Option) (*listConfig, error) {
	c := &listConfig{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
