package conversation

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid conversation transition")
	ErrMissingContext    = errors.New("conversation context incomplete for state")
)
