package task

import (
	"context"

	"habit-streak-bot/internal/model"
)

// CalendarMirror keeps an external calendar copy of active tasks.
type CalendarMirror interface {
	// Upsert creates or replaces the event of t and returns its id.
	Upsert(ctx context.Context, t model.Task) (string, error)
	Remove(ctx context.Context, t model.Task) error
}
