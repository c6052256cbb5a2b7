package repository

import "errors"

var (
	ErrFailedToGet    = errors.New("failed to get conversation")
	ErrFailedToSave   = errors.New("failed to save conversation")
	ErrFailedToDelete = errors.New("failed to delete conversation")
)
