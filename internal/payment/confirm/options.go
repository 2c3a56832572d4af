package confirm

import (
	"context"
	"log/slog"
)

type Option func(*Runner)

// WithLogger sets a custom logger for the Runner instance.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Runner instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Runner) {
		r.logger = slog.New(handler)
	}
}

// WithContext sets a custom parent context for the Runner instance.
func WithContext(ctx context.Context) Option {
	return func(r *Runner) {
		r.parentCtx = ctx
	}
}

// WithIntentID confirms the given checkout intent instead of the persisted
// reference. Used when the provider redirect carries the intent id back.
func WithIntentID(id string) Option {
	return func(r *Runner) {
		r.intentID = id
	}
}

// WithClock replaces the timer source, for tests.
func WithClock(clock Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}
