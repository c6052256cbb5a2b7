package telegram

import (
	"context"
	"fmt"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/task"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

func (h *handler) createTask(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	in, err := parseCreate(args)
	if err != nil {
		return err
	}
	t, err := h.tasks.Create(ctx, sc, in)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ task created: %s (#%d)\n", t.Name, t.ID)
	fmt.Fprintf(&b, "⏰ %s (%s)\n", task.Describe(t), t.Timezone)
	if t.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", t.Description)
	}
	fmt.Fprintf(&b, "\nwhen it's done send a photo with /complete %d", t.ID)
	return h.send(ctx, chatID, b.String())
}

func (h *handler) listTasks(ctx context.Context, chatID int64, sc model.Scope, _ string, _ *pkgTelegram.Message) error {
	list, err := h.tasks.List(ctx, sc)
	if err != nil {
		return err
	}
	if len(list.Active)+len(list.Inactive) == 0 {
		return h.send(ctx, chatID, "📋 no tasks yet, tell me a goal or use /create_task")
	}

	var b strings.Builder
	b.WriteString("📋 your tasks\n")
	if len(list.Active) > 0 {
		b.WriteString("\n✅ active\n")
		for _, v := range list.Active {
			writeTaskLine(&b, v)
		}
	}
	if len(list.Inactive) > 0 {
		b.WriteString("\n⏸️ paused\n")
		for _, v := range list.Inactive {
			writeTaskLine(&b, v)
		}
	}
	b.WriteString("\nmanage with /edit_task, /toggle_task, /delete_task")
	return h.send(ctx, chatID, b.String())
}

func writeTaskLine(b *strings.Builder, v task.View) {
	fmt.Fprintf(b, "#%d %s\n   %s", v.Task.ID, v.Task.Name, v.Schedule)
	if v.CurrentStreak > 0 {
		fmt.Fprintf(b, " · 🔥 %d", v.CurrentStreak)
	}
	b.WriteString("\n")
}

func (h *handler) editTask(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	in, err := parseEdit(args)
	if err != nil {
		return err
	}
	t, err := h.tasks.Update(ctx, sc, in)
	if err != nil {
		return err
	}

	var changes []string
	if in.Name != nil {
		changes = append(changes, "name → "+t.Name)
	}
	if in.ReminderTime != nil {
		changes = append(changes, "time → "+t.ReminderTime.String())
	}
	if in.Description != nil {
		changes = append(changes, "description updated")
	}
	return h.send(ctx, chatID, fmt.Sprintf("✏️ task #%d updated\n%s\n⏰ %s", t.ID, strings.Join(changes, "\n"), task.Describe(t)))
}

func (h *handler) toggleTask(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	if args == "" {
		return &usageError{fmt.Sprintf(usageTaskID, "toggle_task")}
	}
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	out, err := h.tasks.Toggle(ctx, sc, id)
	if err != nil {
		return err
	}

	if !out.Task.IsActive {
		return h.send(ctx, chatID, fmt.Sprintf("⏸️ %s paused, no more reminders until you /toggle_task %d again", out.Task.Name, out.Task.ID))
	}
	text := fmt.Sprintf("▶️ %s is back on", out.Task.Name)
	if out.NextReminder != nil {
		text += "\nnext reminder: " + out.NextReminder.Format("Mon Jan 2 15:04 MST")
	}
	return h.send(ctx, chatID, text)
}

func (h *handler) deleteTask(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	if args == "" {
		return &usageError{fmt.Sprintf(usageTaskID, "delete_task")}
	}
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	t, err := h.tasks.Delete(ctx, sc, id)
	if err != nil {
		return err
	}
	return h.send(ctx, chatID, fmt.Sprintf("🗑️ deleted %s along with its streak and history", t.Name))
}
