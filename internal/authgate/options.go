package authgate

import "log/slog"

type Option func(*Gate)

// WithLogger sets a custom logger for the Gate instance.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Gate instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(g *Gate) {
		g.logger = slog.New(handler)
	}
}
