package repository

import "time"

// ListCompletionsOptions filters the completion log. Results are newest first.
type ListCompletionsOptions struct {
	UserID int64
	TaskID int64     // 0 means every task
	Since  time.Time // inclusive calendar date; zero means no lower bound
	Limit  int       // 0 means no limit
}
