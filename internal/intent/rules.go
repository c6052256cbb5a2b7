package intent

import (
	"regexp"
	"strconv"
	"strings"

	"habit-streak-bot/internal/model"
)

// ParseRules runs the rule-based extractor alone.
func (p *parser) ParseRules(text string) Intent {
	return extractRules(text)
}

func extractRules(text string) Intent {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	name, known := extractActivity(lower)
	freq, count, days := extractFrequency(lower)
	tp := extractTime(trimmed)

	out := Intent{
		ActivityName:   name,
		Frequency:      freq,
		Count:          count,
		Days:           days,
		TimePreference: tp,
	}
	out.Confidence = ruleConfidence(out, known)
	out.Missing = deriveMissing(out, nil)
	return out
}

// ruleConfidence: base 0.5; +0.2 for a known verb, else +0.1 for a
// multi-word name; +0.2 for a frequency; +0.1 for a time; capped at 1.
func ruleConfidence(i Intent, knownVerb bool) float64 {
	c := 0.5
	switch {
	case knownVerb:
		c += 0.2
	case len(strings.Fields(i.ActivityName)) >= 2:
		c += 0.1
	}
	if i.HasFrequency() {
		c += 0.2
	}
	if i.TimePreference != "" {
		c += 0.1
	}
	if c > 1 {
		c = 1
	}
	return c
}

// extractActivity returns the activity name and whether it came from the
// verb vocabulary. lower must already be lower-cased.
func extractActivity(lower string) (string, bool) {
	for i, re := range activityVerbREs {
		if re.MatchString(lower) {
			return activityVerbs[i], true
		}
	}
	for _, re := range nameREs {
		if m := re.FindStringSubmatch(lower); m != nil {
			if name := cleanName(m[1]); name != "" {
				return name, false
			}
		}
	}
	return simpleName(lower), false
}

// simpleName keeps the first few meaningful words.
func simpleName(lower string) string {
	var kept []string
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,!?;:\"'")
		if w == "" || fillerWords[w] {
			continue
		}
		kept = append(kept, w)
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return "task"
	}
	return strings.Join(kept, " ")
}

func cleanName(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ".,!?;:\"'")
	words := strings.Fields(s)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}

// extractFrequency classifies lower. Named weekdays take priority over
// numeric frequencies.
func extractFrequency(lower string) (Frequency, int, model.WeekdaySet) {
	if days := extractDays(lower); !days.IsEmpty() {
		return FrequencySpecificDays, 0, days
	}
	if reDaily.MatchString(lower) {
		return FrequencyDaily, 1, 0
	}
	if n, ok := matchCount(weeklyCountPatterns, lower); ok {
		return FrequencyWeeklyCount, n, 0
	}
	if n, ok := matchCount(intervalPatterns, lower); ok {
		return FrequencyInterval, n, 0
	}
	if reBiWeekly.MatchString(lower) {
		return FrequencyBiWeekly, 14, 0
	}
	return FrequencyUnknown, 0, 0
}

func matchCount(patterns []countPattern, lower string) (int, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if p.count != 0 {
			return p.count, true
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// extractDays collects weekday ranges, groups and individual names.
func extractDays(lower string) model.WeekdaySet {
	var set model.WeekdaySet

	for _, m := range reDayRange.FindAllStringSubmatch(lower, -1) {
		from, _ := model.ParseWeekday(m[1])
		to, _ := model.ParseWeekday(m[2])
		for d := from; ; d = (d + 1) % 7 {
			set = set.Add(d)
			if d == to {
				break
			}
		}
	}
	if reWeekdayGroup.MatchString(lower) {
		set = set.Union(model.WorkWeek())
	}
	if reWeekendGroup.MatchString(lower) {
		set = set.Union(model.Weekend())
	}
	for _, m := range reDayName.FindAllStringSubmatch(lower, -1) {
		if d, ok := model.ParseWeekday(m[1]); ok {
			set = set.Add(d)
		}
	}
	return set
}

// extractTime returns the time phrase as the user wrote it, or "".
func extractTime(text string) string {
	for _, re := range timePhraseREs {
		if loc := re.FindStringIndex(text); loc != nil {
			return text[loc[0]:loc[1]]
		}
	}
	for _, re := range []*regexp.Regexp{reClock12, reHour12, reClock24} {
		if loc := re.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[loc[0]:loc[1]])
		}
	}
	return ""
}
