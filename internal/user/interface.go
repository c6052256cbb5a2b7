package user

import (
	"context"

	"habit-streak-bot/internal/model"
)

// UseCase manages user profiles.
type UseCase interface {
	// Get returns the user, zero-valued when unknown.
	Get(ctx context.Context, userID int64) (model.User, error)
	// Ensure creates the user on first contact and refreshes last_active.
	Ensure(ctx context.Context, sc model.Scope) (model.User, error)
	Register(ctx context.Context, sc model.Scope, input RegisterInput) (model.User, error)
	SetTimezone(ctx context.Context, sc model.Scope, timezone string) (model.User, error)
	SetName(ctx context.Context, sc model.Scope, name string) (model.User, error)
}

// Rescheduler re-derives a user's reminder triggers after a timezone change.
type Rescheduler interface {
	Resync(ctx context.Context, sc model.Scope) error
}
