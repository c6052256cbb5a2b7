package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/user"
	pkgLog "habit-streak-bot/pkg/log"
	pkgResponse "habit-streak-bot/pkg/response"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

// processTimeout bounds one update, model calls included.
const processTimeout = 2 * time.Minute

type handler struct {
	l            pkgLog.Logger
	bot          *pkgTelegram.Bot
	users        user.UseCase
	tasks        task.UseCase
	streaks      streak.UseCase
	reminders    reminder.UseCase
	completions  completion.UseCase
	conversation conversation.UseCase
	quota        quota.UseCase
	voice        *personality.Voice
	defaultTZ    string
	maxImageMB   int
	now          func() time.Time
}

type command func(ctx context.Context, chatID int64, sc model.Scope, args string, msg *pkgTelegram.Message) error

// HandleWebhook acknowledges the update at once and processes it in the
// background; Telegram retries updates that take too long to answer.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		bgCtx = pkgLog.WithFields(bgCtx, "user_id", msg.From.ID, "update_id", update.UpdateID)
		if err := h.ProcessMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background ProcessMessage failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) ProcessMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}
	text := strings.TrimSpace(msg.Command())
	private := msg.Chat.Type == pkgTelegram.ChatTypePrivate
	sc := h.scope(ctx, msg.From)

	if !strings.HasPrefix(text, "/") {
		if !private {
			return nil
		}
		if text == "" {
			if _, ok := uploadOf(msg); ok {
				return h.send(ctx, msg.Chat.ID, usageComplete)
			}
			return nil
		}
		reply, err := h.conversation.HandleMessage(ctx, sc, text)
		if err != nil {
			h.l.Errorf(ctx, "telegram handler: conversation user=%d: %v", sc.UserID, err)
			return h.send(ctx, msg.Chat.ID, h.voice.Error(personality.ErrorGeneral))
		}
		return h.send(ctx, msg.Chat.ID, reply.Text)
	}

	name, args := splitCommand(text)
	cmd, ok := h.commands()[name]
	if !ok {
		return h.send(ctx, msg.Chat.ID, msgUnknownCommand)
	}
	if err := cmd(ctx, msg.Chat.ID, sc, args, msg); err != nil {
		h.l.Warnf(ctx, "telegram handler: /%s user=%d: %v", name, sc.UserID, err)
		return h.send(ctx, msg.Chat.ID, h.errorMessage(err))
	}
	return nil
}

func (h *handler) commands() map[string]command {
	return map[string]command{
		"start":       h.start,
		"register":    h.register,
		"profile":     h.profile,
		"timezone":    h.timezone,
		"help":        h.help,
		"create_task": h.createTask,
		"tasks":       h.listTasks,
		"list_tasks":  h.listTasks,
		"edit_task":   h.editTask,
		"toggle_task": h.toggleTask,
		"delete_task": h.deleteTask,
		"complete":    h.complete,
		"streaks":     h.listStreaks,
		"stats":       h.stats,
		"history":     h.history,
		"next":        h.next,
	}
}

// scope identifies the sender. The stored timezone wins over the default;
// unknown users are not created here.
func (h *handler) scope(ctx context.Context, from *pkgTelegram.User) model.Scope {
	sc := model.Scope{
		UserID:   from.ID,
		Username: from.DisplayName(),
		Timezone: h.defaultTZ,
	}
	u, err := h.users.Get(ctx, from.ID)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: load user=%d: %v", from.ID, err)
		return sc
	}
	if u.Timezone != "" {
		sc.Timezone = u.Timezone
	}
	return sc
}

func (h *handler) send(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return nil
	}
	return h.bot.SendMessage(ctx, chatID, text)
}

// splitCommand turns "/edit_task@bot 3 name=x" into ("edit_task", "3 name=x").
func splitCommand(text string) (string, string) {
	head, rest, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest)
}
