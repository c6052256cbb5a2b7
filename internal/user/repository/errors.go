package repository

import "errors"

var (
	ErrFailedToGet    = errors.New("failed to get")
	ErrFailedToUpsert = errors.New("failed to upsert")
	ErrFailedToUpdate = errors.New("failed to update")
)
