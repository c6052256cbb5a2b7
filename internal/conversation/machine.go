package conversation

import (
	"fmt"
	"strings"
)

// transitions lists the states reachable from each state. Staying put is
// always allowed and so is a reset to ONBOARDING.
var transitions = map[State][]State{
	StateOnboarding:     {StateNameCollection, StateGoalSetting},
	StateNameCollection: {StateGoalSetting},
	StateGoalSetting:    {StateTaskCreation, StateTimeCollection, StateConfirmation},
	StateTaskCreation:   {StateTimeCollection, StateConfirmation, StateIdle},
	StateTimeCollection: {StateConfirmation, StateTaskCreation},
	StateConfirmation:   {StateTaskCreation, StatePaymentPrompt},
	StatePaymentPrompt:  {StateIdle},
	StateIdle:           {StateTaskCreation, StateTimeCollection, StateConfirmation},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to State) bool {
	if !to.Valid() {
		return false
	}
	if from == to || to == StateOnboarding {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the conversation to state to, checking that the context
// holds what that state works on.
func (c *Conversation) Transition(to State) error {
	if !CanTransition(c.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.State, to)
	}
	if err := c.Context.requiredFor(to); err != nil {
		return err
	}
	if to == StateOnboarding {
		c.Context = Context{}
		c.PendingTasks = nil
	}
	c.State = to
	return nil
}

func (ctx Context) requiredFor(s State) error {
	switch s {
	case StateGoalSetting:
		if ctx.Name == "" {
			return fmt.Errorf("%w: %s needs a name", ErrMissingContext, s)
		}
	case StateTimeCollection, StateConfirmation:
		if ctx.Intent == nil {
			return fmt.Errorf("%w: %s needs a parsed intent", ErrMissingContext, s)
		}
	}
	return nil
}

var (
	affirmative = tokenSet("yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay", "bet")
	negative    = tokenSet("no", "n", "nah", "nope")
	// payment answers accept a few more phrasings
	paymentYes = tokenSet("yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay", "bet", "down", "im down", "i'm down")
	paymentNo  = tokenSet("no", "n", "nah", "nope", "not now", "maybe later")
)

func tokenSet(tokens ...string) map[string]bool {
	m := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		m[t] = true
	}
	return m
}

// Answer is a yes/no reading of free text.
type Answer int

const (
	AnswerUnclear Answer = iota
	AnswerYes
	AnswerNo
)

func normalize(text string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(text)), ".!?")
}

// ReadConfirmation reads an answer to the schedule preview.
func ReadConfirmation(text string) Answer {
	return read(text, affirmative, negative)
}

// ReadPayment reads an answer to the payment prompt.
func ReadPayment(text string) Answer {
	return read(text, paymentYes, paymentNo)
}

func read(text string, yes, no map[string]bool) Answer {
	t := normalize(text)
	switch {
	case yes[t]:
		return AnswerYes
	case no[t]:
		return AnswerNo
	}
	return AnswerUnclear
}
