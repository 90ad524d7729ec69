package resolver

import (
	"log/slog"
)

// Option is a function that allows configuring the Resolver.
type Option func(*Resolver) error

// WithLogger sets the logger used by the Resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		r.logger = logger.With("component", "resolver")
		return nil
	}
}

// DefaultOptions returns the default Resolver options.
func DefaultOptions() []Option {
	return []Option{
		WithLogger(slog.Default()),
	}
}
