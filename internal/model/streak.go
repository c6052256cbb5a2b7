package model

import "time"

// Streak is the stored counter pair for one (user, task).
// CurrentStreak is zero whenever LastCompletionDate is nil.
type Streak struct {
	ID                 int64
	UserID             int64
	TaskID             int64
	CurrentStreak      int
	LongestStreak      int
	LastCompletionDate *time.Time
	UpdatedAt          time.Time
}

// Completion is one proof-of-work submission for a calendar date.
type Completion struct {
	ID             int64
	UserID         int64
	TaskID         int64
	CompletionDate time.Time
	ImageReference string
	Explanation    string
	Verified       bool
	Confidence     int
	CreatedAt      time.Time
}

// APIUsage is one metered model call.
type APIUsage struct {
	ID         int64
	UserID     int64
	Endpoint   string
	TokensUsed int
	CreatedAt  time.Time
}
