package telegram

import (
	"context"
	"fmt"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/user"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

func (h *handler) start(ctx context.Context, chatID int64, sc model.Scope, _ string, _ *pkgTelegram.Message) error {
	reply, err := h.conversation.Reset(ctx, sc)
	if err != nil {
		return err
	}
	return h.send(ctx, chatID, reply.Text)
}

func (h *handler) register(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	u, err := h.users.Register(ctx, sc, user.RegisterInput{Timezone: strings.TrimSpace(args)})
	if err != nil {
		return err
	}
	return h.send(ctx, chatID, fmt.Sprintf("✅ you're all set %s\ntimezone: %s\n\ntell me a goal like \"work out 3 times a week\" or use /create_task", u.Username, u.Timezone))
}

func (h *handler) profile(ctx context.Context, chatID int64, sc model.Scope, _ string, _ *pkgTelegram.Message) error {
	u, err := h.users.Get(ctx, sc.UserID)
	if err != nil {
		return err
	}
	if u.ID == 0 {
		return h.send(ctx, chatID, msgNotRegistered)
	}

	list, err := h.tasks.List(ctx, sc)
	if err != nil {
		return err
	}
	left, err := h.quota.Remaining(ctx, sc)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👤 %s\n", u.Username)
	fmt.Fprintf(&b, "timezone: %s\n", u.Timezone)
	fmt.Fprintf(&b, "member since: %s\n", u.CreatedAt.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "tasks: %d active, %d paused\n", len(list.Active), len(list.Inactive))
	fmt.Fprintf(&b, "AI calls left today: %d", left)
	return h.send(ctx, chatID, b.String())
}

func (h *handler) timezone(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	tz := strings.TrimSpace(args)
	if tz == "" {
		return h.send(ctx, chatID, fmt.Sprintf("your timezone is %s\n%s", sc.Timezone, usageTimezone))
	}
	u, err := h.users.SetTimezone(ctx, sc, tz)
	if err != nil {
		return err
	}
	return h.send(ctx, chatID, fmt.Sprintf("🌍 timezone set to %s, your reminders moved with it", u.Timezone))
}

func (h *handler) help(ctx context.Context, chatID int64, _ model.Scope, _ string, _ *pkgTelegram.Message) error {
	return h.send(ctx, chatID, h.voice.Help()+"\n\n"+commandList)
}
