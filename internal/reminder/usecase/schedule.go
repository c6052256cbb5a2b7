package usecase

import (
	"context"
	"errors"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/reminder"
)

func (uc *implUseCase) Sync(ctx context.Context, t model.Task) error {
	err := uc.scheduler.Install(ctx, t)
	if errors.Is(err, reminder.ErrNoOccurrence) {
		uc.l.Warnf(ctx, "reminder.usecase.Sync: task=%d never fires", t.ID)
		return nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.Sync: task=%d: %v", t.ID, err)
		return err
	}
	return nil
}

func (uc *implUseCase) Unschedule(ctx context.Context, key reminder.Key) {
	if uc.scheduler.Remove(key) {
		uc.l.Debugf(ctx, "reminder.usecase.Unschedule: user=%d task=%d", key.UserID, key.TaskID)
	}
}

func (uc *implUseCase) NextReminders(ctx context.Context, sc model.Scope) []reminder.Upcoming {
	return uc.scheduler.NextReminders(sc.UserID)
}

func (uc *implUseCase) Start(ctx context.Context, interval time.Duration) {
	uc.scheduler.Start(ctx, uc.tasks.ListActiveTasks, interval)
}

func (uc *implUseCase) Stop() {
	uc.scheduler.Stop()
}
