package api

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// AuthCoordinator owns the single-flight session refresh. Any number of
// callers hitting a 401 at the same time share one in-flight refresh request
// instead of issuing parallel ones.
type AuthCoordinator struct {
	logger  *slog.Logger
	refresh func(ctx context.Context) error
	group   singleflight.Group
}

// NewAuthCoordinator creates a coordinator around the given refresh call.
func NewAuthCoordinator(refresh func(ctx context.Context) error, logger *slog.Logger) *AuthCoordinator {
	if logger == nil {
		logger = slog.Default().WithGroup("api.AuthCoordinator")
	}
	return &AuthCoordinator{
		logger:  logger,
		refresh: refresh,
	}
}

// Refresh runs the refresh call, collapsing concurrent invocations into one.
// Late callers wait for the in-flight attempt and share its result.
func (c *AuthCoordinator) Refresh(ctx context.Context) error {
	_, err, shared := c.group.Do("refresh", func() (any, error) {
		c.logger.Debug("Refreshing session")
		return nil, c.refresh(ctx)
	})
	if shared {
		c.logger.Debug("Joined in-flight session refresh")
	}
	return err
}
