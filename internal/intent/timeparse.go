package intent

import (
	"strconv"
	"strings"

	"habit-streak-bot/internal/model"
)

// ParseTimeExpression resolves a spoken or written time of day. It tries the
// phrase table, then "H:MM am/pm", then "H am/pm", then 24-hour "HH:MM", and
// finally a phrase embedded in a longer expression. Out-of-range values
// resolve to nothing.
func ParseTimeExpression(text string) (model.ClockTime, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return model.ClockTime{}, false
	}

	for _, p := range timePhrases {
		if lower == p.phrase || lower == p.phrase+"s" {
			return model.Clock(p.hour, p.minute), true
		}
	}

	if m := reClock12.FindStringSubmatch(lower); m != nil {
		return clock12(m[1], m[2], m[3])
	}
	if m := reHour12.FindStringSubmatch(lower); m != nil {
		return clock12(m[1], "0", m[2])
	}
	if m := reClock24.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		c, err := model.NewClockTime(h, mm)
		return c, err == nil
	}

	for i, re := range timePhraseREs {
		if re.MatchString(lower) {
			p := timePhrases[i]
			return model.Clock(p.hour, p.minute), true
		}
	}
	return model.ClockTime{}, false
}

func clock12(hour, minute, meridiem string) (model.ClockTime, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 {
		return model.ClockTime{}, false
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return model.ClockTime{}, false
	}
	switch {
	case meridiem == "p" && h != 12:
		h += 12
	case meridiem == "a" && h == 12:
		h = 0
	}
	c, err := model.NewClockTime(h, m)
	return c, err == nil
}
