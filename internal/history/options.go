package history

import "log/slog"

type SyncOption func(*Synchronizer)

// WithLogger sets a custom logger for the Synchronizer instance.
func WithLogger(logger *slog.Logger) SyncOption {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Synchronizer instance.
func WithLogHandler(handler slog.Handler) SyncOption {
	return func(s *Synchronizer) {
		s.logger = slog.New(handler)
	}
}

// WithValidator sets the function that corrects restored steps against the
// wizard's consistency rules.
func WithValidator(fn func(step string) string) SyncOption {
	return func(s *Synchronizer) {
		s.validate = fn
	}
}

// WithStepHandler sets the function receiving validated restored steps.
func WithStepHandler(fn func(step string)) SyncOption {
	return func(s *Synchronizer) {
		s.onStep = fn
	}
}

// WithOuterHandler sets the handler for restored entries that do not belong
// to the wizard.
func WithOuterHandler(fn func(Entry)) SyncOption {
	return func(s *Synchronizer) {
		s.outer = fn
	}
}
