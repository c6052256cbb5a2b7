package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/task/repository"
	"habit-streak-bot/internal/validation"
)

const maxDescription = 500

func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input task.UpdateInput) (model.Task, error) {
	if input.IsEmpty() {
		return model.Task{}, task.ErrNoChanges
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validation.ValidTaskName(name) {
			return model.Task{}, task.ErrInvalidName
		}
		input.Name = &name
	}
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescription {
		return model.Task{}, task.ErrInvalidDescription
	}

	if _, err := uc.Get(ctx, sc, input.TaskID); err != nil {
		return model.Task{}, err
	}

	t, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
		ID:           input.TaskID,
		Name:         input.Name,
		Description:  input.Description,
		ReminderTime: input.ReminderTime,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateTask: task=%d: %v", input.TaskID, err)
		return model.Task{}, err
	}

	if t.IsActive {
		return uc.activate(ctx, t), nil
	}
	return uc.mirrorTask(ctx, t), nil
}

func (uc *implUseCase) Toggle(ctx context.Context, sc model.Scope, taskID int64) (task.ToggleOutput, error) {
	t, err := uc.Get(ctx, sc, taskID)
	if err != nil {
		return task.ToggleOutput{}, err
	}

	active := !t.IsActive
	t, err = uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{ID: taskID, IsActive: &active})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Toggle UpdateTask: task=%d: %v", taskID, err)
		return task.ToggleOutput{}, err
	}

	out := task.ToggleOutput{Task: t}
	if !active {
		uc.reminders.Unschedule(ctx, reminder.KeyOf(t))
		if uc.mirror != nil && t.CalendarEventID != "" {
			if err := uc.mirror.Remove(ctx, t); err != nil {
				uc.l.Warnf(ctx, "uc.Toggle mirror.Remove: task=%d: %v", t.ID, err)
			} else {
				none := ""
				if cleared, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{ID: t.ID, CalendarEventID: &none}); err == nil {
					out.Task = cleared
				}
			}
		}
		uc.l.Infof(ctx, "uc.Toggle: task=%d paused", t.ID)
		return out, nil
	}

	out.Task = uc.activate(ctx, t)
	for _, u := range uc.reminders.NextReminders(ctx, sc) {
		if u.TaskID == t.ID {
			at := u.NextFire
			out.NextReminder = &at
			break
		}
	}
	uc.l.Infof(ctx, "uc.Toggle: task=%d resumed", t.ID)
	return out, nil
}

func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error) {
	t, err := uc.Get(ctx, sc, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if err := uc.repo.DeleteTask(ctx, taskID); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteTask: task=%d: %v", taskID, err)
		return model.Task{}, err
	}
	uc.reminders.Unschedule(ctx, reminder.KeyOf(t))

	if uc.mirror != nil && t.CalendarEventID != "" {
		if err := uc.mirror.Remove(ctx, t); err != nil {
			uc.l.Warnf(ctx, "uc.Delete mirror.Remove: task=%d event=%s: %v", t.ID, t.CalendarEventID, err)
		}
	}

	uc.l.Infof(ctx, "uc.Delete: user=%d task=%d %q", sc.UserID, t.ID, t.Name)
	return t, nil
}

// Resync moves every task of the user to sc.Timezone and re-derives its trigger.
func (uc *implUseCase) Resync(ctx context.Context, sc model.Scope) error {
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Resync ListTasks: user=%d: %v", sc.UserID, err)
		return err
	}

	tz := sc.Timezone
	var failed int
	for _, t := range tasks {
		if t.Timezone != tz {
			updated, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{ID: t.ID, Timezone: &tz})
			if err != nil {
				failed++
				continue
			}
			t = updated
		}
		if !t.IsActive {
			continue
		}
		if err := uc.reminders.Sync(ctx, t); err != nil {
			failed++
			continue
		}
		uc.mirrorTask(ctx, t)
	}

	uc.l.Infof(ctx, "uc.Resync: user=%d tasks=%d failed=%d tz=%s", sc.UserID, len(tasks), failed, tz)
	if failed > 0 {
		return task.ErrResyncIncomplete
	}
	return nil
}
