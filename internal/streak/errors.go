package streak

import "errors"

var (
	ErrAlreadyCompleted = errors.New("task already completed on this date")
	ErrStreakNotFound   = errors.New("streak not found")
	ErrInvalidDate      = errors.New("completion date is required")
)
