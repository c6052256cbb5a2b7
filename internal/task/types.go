package task

import (
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/schedule"
)

// CreateInput is the direct /create_task path: a daily task at one time.
type CreateInput struct {
	Name         string `validate:"required,taskname"`
	Description  string `validate:"max=500"`
	ReminderTime model.ClockTime
}

// PlanInput turns a confirmed generated schedule into one recurring task.
// ParentRequestID groups the rows created from one confirmation.
type PlanInput struct {
	Name            string
	Description     string
	Tasks           []schedule.GeneratedTask
	Method          model.GenerationMethod
	ParentRequestID string
}

// UpdateInput carries the fields of /edit_task; nil means unchanged.
type UpdateInput struct {
	TaskID       int64
	Name         *string
	Description  *string
	ReminderTime *model.ClockTime
}

// IsEmpty reports whether the update changes nothing.
func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.ReminderTime == nil
}

// View is a task with its schedule description and streak.
type View struct {
	Task          model.Task
	Schedule      string
	CurrentStreak int
	LongestStreak int
	NextReminder  *time.Time
}

// ListOutput splits a user's tasks by state.
type ListOutput struct {
	Active   []View
	Inactive []View
}

// ToggleOutput is the task after /toggle_task.
type ToggleOutput struct {
	Task         model.Task
	NextReminder *time.Time
}
