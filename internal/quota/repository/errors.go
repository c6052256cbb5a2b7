package repository

import "errors"

var (
	ErrFailedToGet    = errors.New("failed to get")
	ErrFailedToUpdate = errors.New("failed to update")
	ErrFailedToInsert = errors.New("failed to insert")
)
