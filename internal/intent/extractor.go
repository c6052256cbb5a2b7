package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/llmprovider"
)

// modelReply is the JSON shape the model is asked to produce.
type modelReply struct {
	TaskName       string          `json:"task_name"`
	FrequencyType  string          `json:"frequency_type"`
	FrequencyValue json.RawMessage `json:"frequency_value"`
	TimePreference *string         `json:"time_preference"`
	Confidence     float64         `json:"confidence"`
	MissingInfo    []string        `json:"missing_info"`
}

// extractModel asks the language model for an Intent. The returned error is
// for logging only; the Intent is always usable.
func (p *parser) extractModel(ctx context.Context, text string) (Intent, int, error) {
	fallback := Intent{
		ActivityName: simpleName(strings.ToLower(text)),
		Frequency:    FrequencyUnknown,
		Confidence:   fallbackConfidence,
		Missing:      []string{MissingFrequency, MissingTime},
	}

	resp, err := p.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    llmprovider.UserText(fmt.Sprintf(promptExtract, text)),
		Temperature: modelTemperature,
		MaxTokens:   modelMaxTokens,
		JSONOutput:  true,
	})
	if err != nil {
		return fallback, 0, err
	}
	tokens := 0
	if resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}

	raw, ok := jsonObject(resp.Text())
	if !ok {
		return fallback, tokens, fmt.Errorf("no JSON object in model reply")
	}
	var reply modelReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return fallback, tokens, fmt.Errorf("decode model reply: %w", err)
	}
	return reply.toIntent(fallback.ActivityName), tokens, nil
}

func (r modelReply) toIntent(defaultName string) Intent {
	out := Intent{
		ActivityName: strings.TrimSpace(strings.ToLower(r.TaskName)),
		Frequency:    Frequency(strings.ToLower(strings.TrimSpace(r.FrequencyType))),
		Confidence:   clampConfidence(r.Confidence / 100),
	}
	if out.ActivityName == "" {
		out.ActivityName = defaultName
	}
	if !out.Frequency.Valid() {
		out.Frequency = FrequencyUnknown
	}
	if r.TimePreference != nil {
		tp := strings.TrimSpace(*r.TimePreference)
		if !strings.EqualFold(tp, "null") {
			out.TimePreference = tp
		}
	}

	n, days := decodeFrequencyValue(r.FrequencyValue)
	switch out.Frequency {
	case FrequencySpecificDays:
		out.Days = days
	case FrequencyDaily:
		out.Count = 1
	case FrequencyBiWeekly:
		out.Count = 14
	case FrequencyWeeklyCount, FrequencyInterval:
		out.Count = n
	}

	out.Missing = deriveMissing(out, r.MissingInfo)
	return out
}

// decodeFrequencyValue accepts a number, a numeric string, or a list of
// weekday names.
func decodeFrequencyValue(raw json.RawMessage) (int, model.WeekdaySet) {
	if len(raw) == 0 {
		return 0, 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, 0
		}
		return 0, extractDays(strings.ToLower(s))
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		var set model.WeekdaySet
		for _, name := range names {
			if d, ok := model.ParseWeekday(name); ok {
				set = set.Add(d)
			}
		}
		return 0, set
	}
	return 0, 0
}

// jsonObject strips code fences and returns the text between the first "{"
// and the last "}".
func jsonObject(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
