package conversation

import (
	"context"
	"time"

	"habit-streak-bot/internal/model"
)

// UseCase drives the onboarding and task creation dialogue. Turns of one
// user are serialized; a failed turn leaves the stored state untouched.
type UseCase interface {
	HandleMessage(ctx context.Context, sc model.Scope, text string) (Reply, error)
	// Reset discards the conversation and greets the user again.
	Reset(ctx context.Context, sc model.Scope) (Reply, error)
	// Sweep deletes expired conversations.
	Sweep(ctx context.Context) (int64, error)
	// StartSweeper runs Sweep every interval until ctx ends.
	StartSweeper(ctx context.Context, interval time.Duration)
}
