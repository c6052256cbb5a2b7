package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/user"
	pkgLog "habit-streak-bot/pkg/log"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// ProcessMessage handles one message synchronously.
	ProcessMessage(ctx context.Context, msg *pkgTelegram.Message) error
}

// Deps are the use cases the bot commands call into.
type Deps struct {
	Bot             *pkgTelegram.Bot
	Users           user.UseCase
	Tasks           task.UseCase
	Streaks         streak.UseCase
	Reminders       reminder.UseCase
	Completions     completion.UseCase
	Conversation    conversation.UseCase
	Quota           quota.UseCase
	Voice           *personality.Voice
	DefaultTimezone string
	MaxImageSizeMB  int
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, d Deps) Handler {
	tz := d.DefaultTimezone
	if tz == "" {
		tz = "UTC"
	}
	return &handler{
		l:            l,
		bot:          d.Bot,
		users:        d.Users,
		tasks:        d.Tasks,
		streaks:      d.Streaks,
		reminders:    d.Reminders,
		completions:  d.Completions,
		conversation: d.Conversation,
		quota:        d.Quota,
		voice:        d.Voice,
		defaultTZ:    tz,
		maxImageMB:   d.MaxImageSizeMB,
		now:          time.Now,
	}
}
