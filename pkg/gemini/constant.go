package gemini

import "time"

const (
	// DefaultModel accepts both text and image parts.
	DefaultModel  = "gemini-2.5-flash"
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	// Vision calls carry a few MB of base64, so the timeout is generous.
	DefaultTimeout = 45 * time.Second
)
