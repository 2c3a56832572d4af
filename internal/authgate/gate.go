// Package authgate decides, at the delivery step, whether the user already
// holds a valid session and may skip email verification.
package authgate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campuskiosk/orderflow/internal/api"
)

// Outcome classifies a session probe.
type Outcome int

const (
	// Authenticated means a valid session exists; verification is skipped.
	Authenticated Outcome = iota

	// Unauthenticated is the explicit "not logged in" signal; the wizard
	// proceeds to verification with no error surfaced.
	Unauthenticated

	// ProbeFailed is a network error or unexpected status. The wizard
	// still proceeds to verification, but a transient error is surfaced.
	ProbeFailed
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	case ProbeFailed:
		return "probe_failed"
	}
	return "unknown"
}

// Result is the outcome of one session probe.
type Result struct {
	Outcome Outcome

	// Email is the session email, set only when Authenticated.
	Email string

	// Err is the underlying failure, set only when ProbeFailed.
	Err error
}

// ProfileFetcher is the slice of the API client the gate needs.
type ProfileFetcher interface {
	Me(ctx context.Context) (*api.Profile, error)
}

// Gate performs the single best-effort session probe. It never retries: the
// verification step itself is the fallback path.
type Gate struct {
	logger  *slog.Logger
	profile ProfileFetcher
}

// New creates a Gate over the given profile source.
func New(profile ProfileFetcher, opts ...Option) *Gate {
	g := &Gate{
		logger:  slog.Default().WithGroup("authgate.Gate"),
		profile: profile,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Probe checks session validity once. It never returns an error; failures
// are folded into the Result so callers cannot strand the wizard.
func (g *Gate) Probe(ctx context.Context) Result {
	profile, err := g.profile.Me(ctx)
	switch {
	case err == nil:
		g.logger.Debug("Session valid, skipping verification", "email", profile.Email)
		return Result{Outcome: Authenticated, Email: profile.Email}
	case errors.Is(err, api.ErrNotAuthenticated):
		g.logger.Debug("No valid session, verification required")
		return Result{Outcome: Unauthenticated}
	default:
		g.logger.Warn("Session probe failed, falling back to verification", "error", err)
		return Result{Outcome: ProbeFailed, Err: err}
	}
}
