package usecase

import (
	"time"

	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/task/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	reminders reminder.UseCase
	streaks   streak.UseCase
	mirror    task.CalendarMirror
	now       func() time.Time
}

// New creates the task UseCase. mirror may be nil when the calendar is not configured.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	reminders reminder.UseCase,
	streaks streak.UseCase,
	mirror task.CalendarMirror,
) task.UseCase {
	return &implUseCase{
		l:         l,
		repo:      repo,
		reminders: reminders,
		streaks:   streaks,
		mirror:    mirror,
		now:       time.Now,
	}
}
