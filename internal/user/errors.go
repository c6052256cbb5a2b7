package user

import "errors"

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidName     = errors.New("invalid name")
	ErrUserNotFound    = errors.New("user not found")
)
