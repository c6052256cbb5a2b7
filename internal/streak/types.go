package streak

import (
	"time"

	"habit-streak-bot/internal/model"
)

// GraceDays is the longest gap between completions that keeps a streak alive.
const GraceDays = 2

// Key identifies one streak.
type Key struct {
	UserID int64
	TaskID int64
}

// RecordInput is the input of RecordCompletion.
type RecordInput struct {
	TaskID int64
	// CompletionDate is the calendar date in the user's zone.
	CompletionDate time.Time
}

// Result reports the streak after RecordCompletion.
type Result struct {
	CurrentStreak  int
	LongestStreak  int
	LastCompletion time.Time
	IsNewRecord    bool
	// Changed is false when the date had already been counted.
	Changed bool
}

// View is a streak as callers should see it: CurrentStreak is forced to zero
// once the grace window has lapsed, even if the stored counter is stale.
type View struct {
	TaskID              int64
	TaskName            string
	TaskActive          bool
	CurrentStreak       int
	LongestStreak       int
	LastCompletion      *time.Time
	IsActive            bool
	DaysSinceCompletion *int
}

// Risk grades how close an active streak is to breaking.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Maintenance is the at-risk report for one active streak.
type Maintenance struct {
	View
	DaysSince     int
	Risk          Risk
	DaysRemaining int
}

// SaveCompletionInput is the input of SaveCompletion.
type SaveCompletionInput struct {
	TaskID         int64
	CompletionDate time.Time
	ImageReference string
	Explanation    string
	Verified       bool
	Confidence     int
}

// HistoryInput is the input of CompletionHistory. TaskID zero means all tasks.
type HistoryInput struct {
	Days   int
	TaskID int64
}

// HistoryEntry is one past completion.
type HistoryEntry struct {
	model.Completion
	TaskName string
}

// Statistics is the 30-day rollup for one user.
type Statistics struct {
	TotalTasks         int
	ActiveStreaks      int
	LongestStreak      int
	CurrentTotalStreak int
	// CompletionRate30d assumes every task is due every day.
	CompletionRate30d float64
	// CadenceRate30d counts only the days each task was actually due.
	CadenceRate30d      float64
	RecentCompletions7d int
	TotalCompletions30d int
	TopStreaks          []View
	RecentCompletions   []HistoryEntry
}
