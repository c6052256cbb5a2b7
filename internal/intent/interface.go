package intent

import (
	"context"

	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/pkg/llmprovider"
	"habit-streak-bot/pkg/log"
)

// Parser turns free-text habit requests into Intents.
type Parser interface {
	// Parse combines the rule-based extractor with the language model.
	// It never fails: model errors degrade to a low-confidence result.
	Parse(ctx context.Context, in ParseInput) ParseOutput
	ParseRules(text string) Intent
	Validate(i Intent) []string
	Pattern(i Intent) schedule.Pattern
}

type parser struct {
	llm llmprovider.Generator
	l   log.Logger
}

var _ Parser = (*parser)(nil)

// New creates a Parser. llm may be nil, in which case only rules are used.
func New(llm llmprovider.Generator, l log.Logger) Parser {
	return &parser{llm: llm, l: l}
}
