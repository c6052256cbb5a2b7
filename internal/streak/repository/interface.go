package repository

import (
	"context"
	"time"

	"habit-streak-bot/internal/model"
)

// Repository persists streak counters and completions.
type Repository interface {
	// GetStreak returns a zero Streak when the row does not exist.
	GetStreak(ctx context.Context, userID, taskID int64) (model.Streak, error)
	// SaveStreak inserts or updates the (user, task) row.
	SaveStreak(ctx context.Context, s model.Streak) (model.Streak, error)
	// GetStreakRecord returns a zero StreakRecord when the row does not exist.
	GetStreakRecord(ctx context.Context, userID, taskID int64) (StreakRecord, error)
	ListStreaks(ctx context.Context, userID int64) ([]StreakRecord, error)

	// CreateCompletion fails with ErrDuplicate for a second row on one date.
	CreateCompletion(ctx context.Context, c model.Completion) (model.Completion, error)
	// GetCompletion returns a zero Completion when none exists for the date.
	GetCompletion(ctx context.Context, userID, taskID int64, date time.Time) (model.Completion, error)
	ListCompletions(ctx context.Context, opt ListCompletionsOptions) ([]CompletionRecord, error)
}

// StreakRecord is a streak joined with its task.
type StreakRecord struct {
	Streak model.Streak
	Task   model.Task
}

// CompletionRecord is a completion joined with its task name.
type CompletionRecord struct {
	Completion model.Completion
	TaskName   string
}
