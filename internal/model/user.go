package model

import "time"

// DefaultTimezone is used when a user never set one.
const DefaultTimezone = "UTC"

type User struct {
	ID            int64
	Username      string
	Timezone      string
	DailyAPICalls int
	LastAPIReset  time.Time
	CreatedAt     time.Time
	LastActive    time.Time
}

// Scope identifies the caller of a use case.
type Scope struct {
	UserID   int64
	Username string
	Timezone string
}
