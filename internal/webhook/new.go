package webhook

import (
	pkgLog "habit-streak-bot/pkg/log"
)

// Guard screens inbound Telegram updates before they reach the bot handler.
type Guard struct {
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewGuard(securityConfig SecurityConfig, l pkgLog.Logger) *Guard {
	return &Guard{
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
