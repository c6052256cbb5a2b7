package repository

import (
	"context"

	"habit-streak-bot/internal/model"
)

// Repository persists tasks. A task is always created together with its
// zeroed streak row, and deleting it cascades to streaks and completions.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	// GetTask returns a zero Task when the row does not exist.
	GetTask(ctx context.Context, id int64) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	// ListActiveTasks returns the active tasks of every user.
	ListActiveTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
