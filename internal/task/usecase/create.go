package usecase

import (
	"context"
	"errors"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/task/repository"
	"habit-streak-bot/internal/validation"
	"habit-streak-bot/pkg/datemath"
)

// Create stores a daily task from /create_task.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (model.Task, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validation.Struct(input); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Field == "Description" {
			return model.Task{}, task.ErrInvalidDescription
		}
		return model.Task{}, task.ErrInvalidName
	}

	t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:            sc.UserID,
		Name:              input.Name,
		Description:       input.Description,
		ReminderTime:      input.ReminderTime,
		Timezone:          sc.Timezone,
		RecurrencePattern: model.RecurrenceDaily,
		GenerationMethod:  model.GenerationManual,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return model.Task{}, err
	}

	uc.l.Infof(ctx, "uc.Create: user=%d task=%d %q at %s", sc.UserID, t.ID, t.Name, t.ReminderTime)
	return uc.activate(ctx, t), nil
}

// CreatePlanned collapses a confirmed generated schedule into one task.
// A repeated ParentRequestID returns the task already created for it.
func (uc *implUseCase) CreatePlanned(ctx context.Context, sc model.Scope, input task.PlanInput) (model.Task, error) {
	if input.ParentRequestID != "" {
		existing, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{UserID: sc.UserID, ParentRequestID: input.ParentRequestID})
		if err != nil {
			uc.l.Errorf(ctx, "uc.CreatePlanned ListTasks: %v", err)
			return model.Task{}, err
		}
		if len(existing) > 0 {
			uc.l.Infof(ctx, "uc.CreatePlanned: request %s already created task=%d", input.ParentRequestID, existing[0].ID)
			return existing[0], nil
		}
	}

	today := uc.now()
	if loc, err := datemath.LoadLocation(sc.Timezone); err == nil {
		today = today.In(loc)
	}

	plan, err := task.MergePlan(strings.TrimSpace(input.Name), input.Tasks, today)
	if err != nil {
		return model.Task{}, err
	}
	if !validation.ValidTaskName(plan.Name) {
		return model.Task{}, task.ErrInvalidName
	}

	description := input.Description
	if description == "" && len(input.Tasks) > 0 {
		description = input.Tasks[0].Description
	}
	method := input.Method
	if method == "" {
		method = model.GenerationNaturalLanguage
	}

	t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:             sc.UserID,
		Name:               plan.Name,
		Description:        description,
		ReminderTime:       plan.ReminderTime,
		Timezone:           sc.Timezone,
		RecurrencePattern:  plan.RecurrencePattern,
		RecurrenceInterval: plan.RecurrenceInterval,
		DaysOfWeek:         plan.DaysOfWeek,
		AnchorDate:         plan.AnchorDate,
		GenerationMethod:   method,
		ParentRequestID:    input.ParentRequestID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreatePlanned CreateTask: %v", err)
		return model.Task{}, err
	}

	uc.l.Infof(ctx, "uc.CreatePlanned: user=%d task=%d %q (%s) from %d generated",
		sc.UserID, t.ID, t.Name, task.Describe(t), len(input.Tasks))
	return uc.activate(ctx, t), nil
}

// activate installs the trigger and the calendar mirror of a stored task.
// Failures are logged; the periodic reconcile installs missing triggers.
func (uc *implUseCase) activate(ctx context.Context, t model.Task) model.Task {
	if err := uc.reminders.Sync(ctx, t); err != nil {
		uc.l.Warnf(ctx, "uc.activate Sync: task=%d: %v", t.ID, err)
	}
	return uc.mirrorTask(ctx, t)
}

// mirrorTask upserts the calendar event and stores a new event id.
func (uc *implUseCase) mirrorTask(ctx context.Context, t model.Task) model.Task {
	if uc.mirror == nil {
		return t
	}
	eventID, err := uc.mirror.Upsert(ctx, t)
	if err != nil {
		uc.l.Warnf(ctx, "uc.mirrorTask Upsert: task=%d: %v", t.ID, err)
		return t
	}
	if eventID == t.CalendarEventID {
		return t
	}
	updated, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{ID: t.ID, CalendarEventID: &eventID})
	if err != nil {
		uc.l.Warnf(ctx, "uc.mirrorTask UpdateTask: task=%d: %v", t.ID, err)
		t.CalendarEventID = eventID
		return t
	}
	return updated
}
