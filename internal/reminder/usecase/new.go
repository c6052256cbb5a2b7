package usecase

import (
	"context"

	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/streak"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	tasks     reminder.TaskSource
	users     reminder.UserSource
	streaks   streak.UseCase
	voice     *personality.Voice
	messenger reminder.Messenger
	scheduler *reminder.Scheduler
}

// New creates the reminder UseCase. Its scheduler dispatches to SendReminder.
func New(
	l pkgLog.Logger,
	tasks reminder.TaskSource,
	users reminder.UserSource,
	streaks streak.UseCase,
	voice *personality.Voice,
	messenger reminder.Messenger,
) reminder.UseCase {
	uc := &implUseCase{
		l:         l,
		tasks:     tasks,
		users:     users,
		streaks:   streaks,
		voice:     voice,
		messenger: messenger,
	}
	uc.scheduler = reminder.NewScheduler(l, func(ctx context.Context, key reminder.Key) {
		if err := uc.SendReminder(ctx, key); err != nil {
			l.Warnf(ctx, "reminder.usecase.dispatch: user=%d task=%d: %v", key.UserID, key.TaskID, err)
		}
	})
	return uc
}
