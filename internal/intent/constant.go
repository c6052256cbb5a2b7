package intent

import "regexp"

const (
	modelTemperature = 0.3
	modelMaxTokens   = 200

	// fallbackConfidence is reported when the model call fails or its output
	// cannot be decoded.
	fallbackConfidence = 0.2

	// trustModelAbove is the model confidence beyond which its result wins.
	trustModelAbove = 0.7

	// blendPenalty scales the confidence of a field-by-field merge.
	blendPenalty = 0.8
)

const promptExtract = `Extract task information from this message: "%s"

Return a JSON object with exactly these fields:
{
  "task_name": "short activity name",
  "frequency_type": "daily|weekly_count|specific_days|interval|bi_weekly|unknown",
  "frequency_value": number, list of weekday names, or null,
  "time_preference": "time of day as written by the user, or null",
  "confidence": 0-100,
  "missing_info": ["frequency", "time"]
}

Examples:
"I want to work out 3 times a week" -> {"task_name": "work out", "frequency_type": "weekly_count", "frequency_value": 3, "time_preference": null, "confidence": 90, "missing_info": ["time"]}
"Read every day at 9pm" -> {"task_name": "read", "frequency_type": "daily", "frequency_value": 1, "time_preference": "9pm", "confidence": 95, "missing_info": []}
"Meditate on Monday and Friday mornings" -> {"task_name": "meditate", "frequency_type": "specific_days", "frequency_value": ["monday", "friday"], "time_preference": "morning", "confidence": 90, "missing_info": []}

Reply with the JSON object only.`

// timePhrase maps a spoken time of day to a clock time.
type timePhrase struct {
	phrase string
	hour   int
	minute int
}

// timePhrases is ordered longest phrase first so "early morning" beats "morning".
var timePhrases = []timePhrase{
	{"early afternoon", 13, 0},
	{"late afternoon", 16, 0},
	{"early morning", 6, 0},
	{"early evening", 17, 0},
	{"late morning", 10, 0},
	{"late evening", 20, 0},
	{"before work", 7, 0},
	{"lunch time", 12, 0},
	{"after work", 17, 30},
	{"before bed", 21, 30},
	{"afternoon", 14, 0},
	{"lunchtime", 12, 0},
	{"morning", 8, 0},
	{"evening", 18, 0},
	{"wake up", 7, 0},
	{"night", 21, 0},
}

var timePhraseREs = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(timePhrases))
	for i, p := range timePhrases {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.phrase) + `s?\b`)
	}
	return out
}()

// Clock-time patterns, tried in order.
var (
	reClock12 = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*([ap])\.?m\b\.?`)
	reHour12  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*([ap])\.?m\b\.?`)
	reClock24 = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// activityVerbs is the fixed vocabulary matched against the input, in priority order.
var activityVerbs = []string{
	"work out", "workout", "exercise", "run", "jog", "lift", "gym",
	"read", "study", "learn", "practice", "meditate", "yoga", "stretch",
	"write", "journal", "blog", "cook", "meal prep", "eat",
	"walk", "hike", "bike", "code", "program", "develop",
	"clean", "organize", "tidy",
}

var activityVerbREs = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(activityVerbs))
	for i, v := range activityVerbs {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(v) + `(?:s|es|ing|ning|ging|ping)?\b`)
	}
	return out
}()

// Name fallbacks when no known verb is present.
var nameREs = []*regexp.Regexp{
	regexp.MustCompile(`(?:i want to|i'd like to|i need to|help me|remind me to)\s+(.+?)(?:\s+(?:every|daily|each|on|at|in the|\d+\s*times?|once|twice|three times|weekly)\b|$)`),
	regexp.MustCompile(`(?:start|begin|try)\s+(.+?)(?:\s+(?:every|daily|each|on|at|in the|\d+\s*times?|once|twice|weekly)\b|$)`),
}

var fillerWords = map[string]bool{
	"i": true, "want": true, "to": true, "need": true, "would": true, "like": true,
	"please": true, "me": true, "help": true, "remind": true, "a": true, "the": true,
	"my": true, "start": true, "begin": true, "try": true, "i'd": true, "let's": true,
}

type countPattern struct {
	re    *regexp.Regexp
	count int // zero means take it from the first capture group
}

var (
	reDaily = regexp.MustCompile(`\b(?:daily|every\s*day|each\s*day|everyday)\b`)

	weeklyCountPatterns = []countPattern{
		{regexp.MustCompile(`\b(\d+)\s*(?:x|times?)\s*(?:a|per|each)\s*week\b`), 0},
		{regexp.MustCompile(`\bonce\s*(?:a|per|each)\s*week\b`), 1},
		{regexp.MustCompile(`\btwice\s*(?:a|per|each)\s*week\b`), 2},
		{regexp.MustCompile(`\bthree\s*times\s*(?:a|per|each)\s*week\b`), 3},
		{regexp.MustCompile(`\bfour\s*times\s*(?:a|per|each)\s*week\b`), 4},
		{regexp.MustCompile(`\bfive\s*times\s*(?:a|per|each)\s*week\b`), 5},
	}

	intervalPatterns = []countPattern{
		{regexp.MustCompile(`\bevery\s*other\s*day\b`), 2},
		{regexp.MustCompile(`\bevery\s*two\s*days\b`), 2},
		{regexp.MustCompile(`\bevery\s*three\s*days\b`), 3},
		{regexp.MustCompile(`\bevery\s*(\d+)\s*days\b`), 0},
	}

	reBiWeekly = regexp.MustCompile(`\b(?:every\s*(?:two|2)\s*weeks|bi-?weekly|fortnightly|twice\s*a\s*month)\b`)

	reWeekdayGroup = regexp.MustCompile(`\b(?:weekdays?|work\s*days?|workdays?)(?:\s*only)?\b`)
	reWeekendGroup = regexp.MustCompile(`\bweekends?(?:\s*only)?\b`)

	dayNamePattern = `(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?`
	reDayRange     = regexp.MustCompile(`\b` + dayNamePattern + `\s*(?:through|thru|to|-)\s*` + dayNamePattern + `\b`)
	reDayName      = regexp.MustCompile(`\b` + dayNamePattern + `\b`)
)

// taskRequestHints mark a message as a habit request when the conversation is idle.
var taskRequestHints = []string{
	"want to", "need to", "would like to", "i'd like to", "remind me", "help me",
	"start", "every", "daily", "weekly", "times", "habit", "routine",
}

var timeSuggestions = []string{
	"Try formats like: '7:30 AM', 'morning', 'after work'",
	"Examples: '6:00 PM', 'evening', 'before bed'",
	"Use 24-hour format: '07:30', '18:00'",
}

var frequencySuggestions = []string{
	"Try: '3 times a week', 'daily', 'every other day'",
	"Examples: 'weekdays only', 'Monday and Friday', 'twice a week'",
	"Be specific: 'every Tuesday', 'Monday through Friday'",
}
