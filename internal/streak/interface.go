package streak

import (
	"context"

	"habit-streak-bot/internal/model"
)

// UseCase owns streak counters and the completion log.
type UseCase interface {
	// RecordCompletion advances the (user, task) streak for a date.
	// Calls for the same key are serialized.
	RecordCompletion(ctx context.Context, sc model.Scope, input RecordInput) (Result, error)
	Get(ctx context.Context, sc model.Scope, taskID int64) (View, error)
	ListForUser(ctx context.Context, sc model.Scope) ([]View, error)
	Statistics(ctx context.Context, sc model.Scope) (Statistics, error)
	// CheckMaintenance reports every active streak with its risk level.
	CheckMaintenance(ctx context.Context, sc model.Scope) ([]Maintenance, error)
	CompletionHistory(ctx context.Context, sc model.Scope, input HistoryInput) ([]HistoryEntry, error)

	// SaveCompletion appends a completion row; a second row for the same
	// date fails with ErrAlreadyCompleted.
	SaveCompletion(ctx context.Context, sc model.Scope, input SaveCompletionInput) (model.Completion, error)
	// CompletionOn returns the completion for a date, zero-valued if none.
	CompletionOn(ctx context.Context, sc model.Scope, input RecordInput) (model.Completion, error)
}
