package conversation

import (
	"time"

	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/schedule"
)

// DefaultTimeout is how long a conversation survives without a turn.
const DefaultTimeout = 24 * time.Hour

// State is a step of the onboarding and task creation dialogue.
type State string

const (
	StateOnboarding     State = "onboarding"
	StateNameCollection State = "name_collection"
	StateGoalSetting    State = "goal_setting"
	StateTaskCreation   State = "task_creation"
	StateTimeCollection State = "time_collection"
	StateConfirmation   State = "confirmation"
	StatePaymentPrompt  State = "payment_prompt"
	StateIdle           State = "idle"
)

func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Context is what the dialogue has learned so far. Which fields a state needs
// is checked by Conversation.Transition.
type Context struct {
	Name          string               `json:"name,omitempty"`
	NameIsBasic   bool                 `json:"name_is_basic,omitempty"`
	ReturningUser bool                 `json:"returning_user,omitempty"`
	GoalType      personality.GoalType `json:"goal_type,omitempty"`
	InitialGoal   string               `json:"initial_goal,omitempty"`
	GeneralGoal   string               `json:"general_goal,omitempty"`
	Intent        *intent.Intent       `json:"parsed_intent,omitempty"`
	ParsedTime    *model.ClockTime     `json:"parsed_time,omitempty"`
	// RequestID identifies the pending schedule; a repeated "yes" reuses it.
	RequestID string `json:"request_id,omitempty"`
	// CreatedTaskID is the task made by the last confirmation.
	CreatedTaskID int64 `json:"created_task_id,omitempty"`
}

// Conversation is the persisted dialogue with one user.
type Conversation struct {
	UserID          int64
	State           State
	Context         Context
	PendingTasks    []schedule.GeneratedTask
	LastInteraction time.Time
	ExpiresAt       time.Time
}

// Start opens a fresh conversation at ONBOARDING.
func Start(userID int64, now time.Time, ttl time.Duration) Conversation {
	return Conversation{
		UserID:          userID,
		State:           StateOnboarding,
		LastInteraction: now,
		ExpiresAt:       now.Add(ttl),
	}
}

// Expired reports whether the conversation must be discarded.
func (c Conversation) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Touch records a turn and pushes the expiry out by ttl.
func (c *Conversation) Touch(now time.Time, ttl time.Duration) {
	c.LastInteraction = now
	c.ExpiresAt = now.Add(ttl)
}

// Clone copies the conversation deep enough that edits to the copy never
// reach the original.
func (c Conversation) Clone() Conversation {
	out := c
	if c.Context.Intent != nil {
		in := *c.Context.Intent
		in.Missing = append([]string(nil), in.Missing...)
		out.Context.Intent = &in
	}
	if c.Context.ParsedTime != nil {
		t := *c.Context.ParsedTime
		out.Context.ParsedTime = &t
	}
	out.PendingTasks = append([]schedule.GeneratedTask(nil), c.PendingTasks...)
	return out
}

// Reply is the text sent back for one turn.
type Reply struct {
	Text  string
	State State
}
