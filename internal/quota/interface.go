package quota

import (
	"context"

	"habit-streak-bot/internal/model"
)

// UseCase meters language-model calls per user.
type UseCase interface {
	// Allow reports whether the user may make one more model call now.
	// It checks the per-minute burst and the daily budget without consuming.
	Allow(ctx context.Context, sc model.Scope) (bool, error)
	// Record counts a model call against the daily budget and logs its usage.
	Record(ctx context.Context, sc model.Scope, input RecordInput) error
	// Remaining is what is left of today's budget.
	Remaining(ctx context.Context, sc model.Scope) (int, error)
}
