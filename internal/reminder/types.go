package reminder

import (
	"time"

	"habit-streak-bot/internal/model"
)

// Key identifies the trigger of one task.
type Key struct {
	UserID int64
	TaskID int64
}

// KeyOf returns the trigger key of a task.
func KeyOf(t model.Task) Key {
	return Key{UserID: t.UserID, TaskID: t.ID}
}

// Upcoming is an installed trigger and its next fire time in the task's zone.
type Upcoming struct {
	TaskID   int64     `json:"task_id"`
	TaskName string    `json:"task_name"`
	NextFire time.Time `json:"next_fire"`
	Timezone string    `json:"timezone"`
}

// ReconcileResult summarizes one reconciliation pass.
type ReconcileResult struct {
	Installed int
	Kept      int
	Removed   int
	Spent     int
	Failed    int
}
