package task

import (
	"context"

	"habit-streak-bot/internal/model"
)

// UseCase manages tasks and keeps their reminder triggers in sync.
type UseCase interface {
	// Create stores a daily task with its streak row and installs its trigger.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Task, error)
	// CreatePlanned merges generated tasks into one recurring task.
	CreatePlanned(ctx context.Context, sc model.Scope, input PlanInput) (model.Task, error)
	// Get returns an owned task or ErrTaskNotFound.
	Get(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error)
	List(ctx context.Context, sc model.Scope) (ListOutput, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (model.Task, error)
	Toggle(ctx context.Context, sc model.Scope, taskID int64) (ToggleOutput, error)
	// Delete removes the task, its streak and completions, trigger and mirror.
	Delete(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error)
	// Resync re-derives every trigger of the user, e.g. after a timezone change.
	Resync(ctx context.Context, sc model.Scope) error
}
