package repository

import (
	"context"
	"time"
)

// Repository keeps the daily model-call counter on the users row and the
// per-call api_usage log.
type Repository interface {
	// GetUsage returns the stored counter; a zero Usage when the user is unknown.
	GetUsage(ctx context.Context, userID int64) (Usage, error)
	// IncrementUsage resets the counter when dayStart is after the last reset,
	// then adds one, all in one transaction. It returns the new count.
	IncrementUsage(ctx context.Context, userID int64, dayStart, at time.Time) (int, error)
	CreateUsageLog(ctx context.Context, opt CreateUsageLogOptions) error
}

// Usage is the counter state of one user.
type Usage struct {
	Calls     int
	LastReset time.Time
}

type CreateUsageLogOptions struct {
	UserID   int64
	Endpoint string
	Tokens   int
	At       time.Time
}
