package repository

import (
	"context"
	"time"

	"habit-streak-bot/internal/model"
)

// Repository persists user profiles.
type Repository interface {
	// GetUser returns a zero User when the row does not exist.
	GetUser(ctx context.Context, id int64) (model.User, error)
	// EnsureUser inserts the row on first contact and refreshes last_active.
	EnsureUser(ctx context.Context, opt EnsureUserOptions) (model.User, error)
	UpdateUser(ctx context.Context, opt UpdateUserOptions) (model.User, error)
}

// EnsureUserOptions seeds a new row. Timezone is ignored for existing users.
type EnsureUserOptions struct {
	ID       int64
	Timezone string
	At       time.Time
}

// UpdateUserOptions changes the non-nil fields.
type UpdateUserOptions struct {
	ID       int64
	Username *string
	Timezone *string
}
