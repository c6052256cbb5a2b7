package usecase

import (
	"context"
	"errors"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/task/repository"
)

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error) {
	t, err := uc.repo.GetTask(ctx, taskID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Get GetTask: task=%d: %v", taskID, err)
		return model.Task{}, err
	}
	// someone else's task is reported exactly like a missing one
	if t.ID == 0 || t.UserID != sc.UserID {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope) (task.ListOutput, error) {
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: user=%d: %v", sc.UserID, err)
		return task.ListOutput{}, err
	}

	next := make(map[int64]time.Time)
	for _, u := range uc.reminders.NextReminders(ctx, sc) {
		next[u.TaskID] = u.NextFire
	}

	var out task.ListOutput
	for _, t := range tasks {
		v := task.View{Task: t, Schedule: task.Describe(t)}
		s, err := uc.streaks.Get(ctx, sc, t.ID)
		switch {
		case err == nil:
			v.CurrentStreak, v.LongestStreak = s.CurrentStreak, s.LongestStreak
		case !errors.Is(err, streak.ErrStreakNotFound):
			uc.l.Warnf(ctx, "uc.List streaks.Get: task=%d: %v", t.ID, err)
		}
		if at, ok := next[t.ID]; ok {
			v.NextReminder = &at
		}

		if t.IsActive {
			out.Active = append(out.Active, v)
		} else {
			out.Inactive = append(out.Inactive, v)
		}
	}
	return out, nil
}
