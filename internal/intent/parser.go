package intent

import (
	"context"
	"strings"
)

func (p *parser) Parse(ctx context.Context, in ParseInput) ParseOutput {
	rules := extractRules(in.Text)
	if !in.UseModel || p.llm == nil {
		return ParseOutput{Intent: rules}
	}

	ai, tokens, err := p.extractModel(ctx, in.Text)
	if err != nil {
		p.l.Warnf(ctx, "intent.Parse: model extraction failed, using fallback: %v", err)
	}

	merged := merge(ai, rules)
	p.l.Debugf(ctx, "intent.Parse: rules=%.2f model=%.2f merged=%.2f frequency=%s",
		rules.Confidence, ai.Confidence, merged.Confidence, merged.Frequency)

	return ParseOutput{Intent: merged, ModelCalled: true, Tokens: tokens}
}

// merge reconciles the model and rule readings.
func merge(ai, rules Intent) Intent {
	var out Intent
	switch {
	case ai.Confidence > trustModelAbove:
		out = ai
		if !out.HasFrequency() && rules.HasFrequency() {
			out.Frequency, out.Count, out.Days = rules.Frequency, rules.Count, rules.Days
		}
		if out.TimePreference == "" {
			out.TimePreference = rules.TimePreference
		}
		out.Missing = deriveMissing(out, ai.Missing)

	case rules.Confidence > ai.Confidence:
		out = rules

	default:
		out.ActivityName = ai.ActivityName
		if out.ActivityName == "" {
			out.ActivityName = rules.ActivityName
		}
		src := ai
		if rules.HasFrequency() {
			src = rules
		}
		out.Frequency, out.Count, out.Days = src.Frequency, src.Count, src.Days
		out.TimePreference = rules.TimePreference
		if out.TimePreference == "" {
			out.TimePreference = ai.TimePreference
		}
		out.Confidence = maxFloat(ai.Confidence, rules.Confidence) * blendPenalty
		out.Missing = deriveMissing(out, append(append([]string{}, ai.Missing...), rules.Missing...))
	}
	if out.Frequency == "" {
		out.Frequency = FrequencyUnknown
	}
	return out
}

// deriveMissing unions reported with the fields actually absent from i, and
// drops "frequency"/"time" when i does carry them.
func deriveMissing(i Intent, reported []string) []string {
	var out []string
	if !i.HasFrequency() {
		out = append(out, MissingFrequency)
	}
	if i.TimePreference == "" {
		out = append(out, MissingTime)
	}
	seen := map[string]bool{MissingFrequency: true, MissingTime: true}
	for _, r := range reported {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// LooksLikeTaskRequest is the keyword heuristic used when an idle
// conversation receives a new message.
func LooksLikeTaskRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, h := range taskRequestHints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	for _, re := range activityVerbREs {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
