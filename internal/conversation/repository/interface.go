package repository

import (
	"context"
	"time"

	"habit-streak-bot/internal/conversation"
)

// Repository persists one conversation row per user.
type Repository interface {
	// Get returns the stored conversation, zero-valued when there is none.
	Get(ctx context.Context, userID int64) (conversation.Conversation, error)
	// Save inserts or replaces the row of c.UserID.
	Save(ctx context.Context, c conversation.Conversation) error
	Delete(ctx context.Context, userID int64) error
	// DeleteExpired removes rows whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
