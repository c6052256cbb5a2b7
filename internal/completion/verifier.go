package completion

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"habit-streak-bot/pkg/llmprovider"
	"habit-streak-bot/pkg/log"
)

const promptVerify = `Analyze this image to determine if the user has completed their task: "%s"
%s
Look for evidence that the task has been genuinely completed. Consider:
- Visual evidence of the activity
- Appropriate setting/context
- Realistic completion indicators

Respond with:
1. VERIFIED or NOT_VERIFIED
2. Confidence score (0-100)
3. Brief explanation of your decision
4. Encouraging comment in the personality of a supportive online friend (casual, modern slang)

Be reasonable but not overly strict in verification. Format your response as:
VERIFICATION: [VERIFIED/NOT_VERIFIED]
CONFIDENCE: [0-100]
EXPLANATION: [brief explanation]
RESPONSE: [encouraging comment in character]`

const (
	verifyMaxTokens   = 200
	verifyTemperature = 0.2
)

const (
	explanationUnparsed = "Could not parse verification response"
	explanationFailed   = "AI verification failed"
)

type verifier struct {
	l   log.Logger
	llm llmprovider.Generator
}

// NewVerifier creates a Verifier backed by a vision-capable model.
func NewVerifier(l log.Logger, llm llmprovider.Generator) Verifier {
	return &verifier{l: l, llm: llm}
}

func (v *verifier) Verify(ctx context.Context, input VerifyInput) Verdict {
	if v.llm == nil {
		return Verdict{Explanation: explanationFailed}
	}

	desc := ""
	if input.Description != "" {
		desc = fmt.Sprintf("Task description: %q\n", input.Description)
	}

	resp, err := v.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{{
			Role: "user",
			Parts: []llmprovider.Part{
				{Text: fmt.Sprintf(promptVerify, input.TaskName, desc)},
				{Image: &llmprovider.Image{MimeType: input.MimeType, Data: input.Image}},
			},
		}},
		Temperature: verifyTemperature,
		MaxTokens:   verifyMaxTokens,
	})
	if err != nil {
		v.l.Warnf(ctx, "completion.verifier.Verify: %v", err)
		return Verdict{Explanation: explanationFailed}
	}

	verdict := ParseVerdict(resp.Text())
	verdict.ModelCalled = true
	if resp.Usage != nil {
		verdict.Tokens = resp.Usage.TotalTokens
	}
	return verdict
}

// ParseVerdict reads the VERIFICATION/CONFIDENCE/EXPLANATION/RESPONSE lines.
// Unknown lines are ignored and confidence is clamped to 0..100.
func ParseVerdict(text string) Verdict {
	out := Verdict{Explanation: explanationUnparsed}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.Trim(key, "*# ")) {
		case "VERIFICATION":
			out.Verified = strings.EqualFold(strings.Trim(value, "[]* "), "VERIFIED")
		case "CONFIDENCE":
			n, err := strconv.Atoi(strings.TrimSuffix(strings.Trim(value, "[]* "), "%"))
			if err == nil {
				out.Confidence = clamp(n)
			}
		case "EXPLANATION":
			out.Explanation = value
		case "RESPONSE":
			out.Response = value
		}
	}
	return out
}

func clamp(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
