package reminder

import (
	"context"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/telegram"
)

// UseCase keeps triggers in line with task rows and sends reminders.
type UseCase interface {
	// Sync installs, replaces or removes the trigger of a task.
	Sync(ctx context.Context, t model.Task) error
	// Unschedule drops the trigger of a deleted task.
	Unschedule(ctx context.Context, key Key)
	// SendReminder renders and delivers the reminder of one task.
	SendReminder(ctx context.Context, key Key) error
	NextReminders(ctx context.Context, sc model.Scope) []Upcoming
	// Start loads every active task and reconciles on interval until ctx ends.
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// TaskSource is the read side of task storage the scheduler depends on.
type TaskSource interface {
	GetTask(ctx context.Context, id int64) (model.Task, error)
	ListActiveTasks(ctx context.Context) ([]model.Task, error)
}

// UserSource resolves the recipient's profile.
type UserSource interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
}

// Messenger delivers direct messages.
type Messenger interface {
	SendDirectMessage(ctx context.Context, userID int64, text string) (telegram.DeliveryStatus, error)
}
