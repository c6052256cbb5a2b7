package repository

import (
	"time"

	"habit-streak-bot/internal/model"
)

// CreateTaskOptions holds the columns of a new task.
type CreateTaskOptions struct {
	UserID             int64
	Name               string
	Description        string
	ReminderTime       model.ClockTime
	Timezone           string
	RecurrencePattern  model.RecurrencePattern
	RecurrenceInterval int
	DaysOfWeek         model.WeekdaySet
	AnchorDate         time.Time // zero means none
	GenerationMethod   model.GenerationMethod
	ParentRequestID    string
}

// ListTasksOptions filters one user's tasks. Results are oldest first.
type ListTasksOptions struct {
	UserID     int64
	ActiveOnly bool
	// ParentRequestID keeps only the tasks of one confirmation when set.
	ParentRequestID string
}

// UpdateTaskOptions changes the non-nil fields of one task.
type UpdateTaskOptions struct {
	ID              int64
	Name            *string
	Description     *string
	ReminderTime    *model.ClockTime
	Timezone        *string
	IsActive        *bool
	CalendarEventID *string
}
