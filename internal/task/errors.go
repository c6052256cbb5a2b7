package task

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidName  = errors.New("invalid task name")
	ErrInvalidTime  = errors.New("invalid reminder time")
	ErrNoChanges    = errors.New("nothing to update")
	ErrEmptyPlan    = errors.New("no generated tasks to create")

	ErrInvalidDescription = errors.New("description too long")
	ErrResyncIncomplete   = errors.New("some tasks could not be rescheduled")
)
