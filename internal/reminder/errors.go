package reminder

import "errors"

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrNoOccurrence    = errors.New("trigger never fires")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInactive    = errors.New("task is inactive")
	ErrUnreachable     = errors.New("recipient unreachable")
)
