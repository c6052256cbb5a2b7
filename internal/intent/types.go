package intent

import "habit-streak-bot/internal/model"

// Frequency is the recurrence family an utterance was classified into.
type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeeklyCount  Frequency = "weekly_count"
	FrequencySpecificDays Frequency = "specific_days"
	FrequencyInterval     Frequency = "interval"
	FrequencyBiWeekly     Frequency = "bi_weekly"
	FrequencyUnknown      Frequency = "unknown"
)

// Valid reports whether f is one of the known families, unknown included.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeeklyCount, FrequencySpecificDays,
		FrequencyInterval, FrequencyBiWeekly, FrequencyUnknown:
		return true
	}
	return false
}

// Missing field names.
const (
	MissingFrequency = "frequency"
	MissingTime      = "time"
)

// Intent is the structured reading of a free-text habit request.
//
// Count carries the numeric frequency value: times per week for weekly_count,
// days for interval and bi_weekly, 1 for daily. Days carries the weekday set
// for specific_days. Missing lists "frequency" iff Frequency is unknown and
// "time" iff TimePreference is empty.
type Intent struct {
	ActivityName   string           `json:"activity_name"`
	Frequency      Frequency        `json:"frequency"`
	Count          int              `json:"count,omitempty"`
	Days           model.WeekdaySet `json:"days,omitempty"`
	TimePreference string           `json:"time_preference,omitempty"`
	Confidence     float64          `json:"confidence"`
	Missing        []string         `json:"missing,omitempty"`
}

// HasFrequency reports whether a frequency was resolved.
func (i Intent) HasFrequency() bool {
	return i.Frequency != "" && i.Frequency != FrequencyUnknown
}

// IsMissing reports whether field is listed as missing.
func (i Intent) IsMissing(field string) bool {
	for _, m := range i.Missing {
		if m == field {
			return true
		}
	}
	return false
}

// ParseInput is the input of Parser.Parse.
type ParseInput struct {
	Text string
	// UseModel enables the language-model pass. Callers turn it off when the
	// user's quota is exhausted.
	UseModel bool
}

// ParseOutput is the result of Parser.Parse.
type ParseOutput struct {
	Intent Intent
	// ModelCalled is true when the language model was actually invoked,
	// successful or not. Callers meter usage on it.
	ModelCalled bool
	Tokens      int
}
