package usecase

import (
	"context"
	"fmt"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/pkg/log"
	"habit-streak-bot/pkg/telegram"
)

func (uc *implUseCase) SendReminder(ctx context.Context, key reminder.Key) error {
	ctx = log.WithFields(ctx, "user_id", key.UserID, "task_id", key.TaskID)

	task, err := uc.tasks.GetTask(ctx, key.TaskID)
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.SendReminder: get task: %v", err)
		return err
	}
	if task.ID == 0 || task.UserID != key.UserID {
		uc.scheduler.Remove(key)
		return reminder.ErrTaskNotFound
	}
	if !task.IsActive {
		uc.scheduler.Remove(key)
		return reminder.ErrTaskInactive
	}

	user, err := uc.users.GetUser(ctx, key.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.SendReminder: get user: %v", err)
		return err
	}

	sc := model.Scope{UserID: key.UserID, Username: user.Username, Timezone: task.Timezone}
	view, err := uc.streaks.Get(ctx, sc, task.ID)
	if err != nil {
		// send without streak numbers
		uc.l.Warnf(ctx, "reminder.usecase.SendReminder: get streak: %v", err)
	}

	status, err := uc.messenger.SendDirectMessage(ctx, key.UserID, uc.render(user, task, view.CurrentStreak, view.LongestStreak))
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.SendReminder: send: %v", err)
		return err
	}
	if status != telegram.Delivered {
		uc.l.Warnf(ctx, "reminder.usecase.SendReminder: recipient %s, skipped", status)
		return reminder.ErrUnreachable
	}

	uc.l.Infof(ctx, "reminder.usecase.SendReminder: sent %q (streak %d)", task.Name, view.CurrentStreak)
	return nil
}

func (uc *implUseCase) render(user model.User, task model.Task, current, best int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ Time for: %s\n\n", task.Name)
	b.WriteString(uc.voice.Reminder(user.Username, task.Name, current))
	b.WriteString("\n\n")
	if task.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n\n", task.Description)
	}
	fmt.Fprintf(&b, "🔥 Current Streak: %d %s\n", current, days(current))
	fmt.Fprintf(&b, "🏆 Best Streak: %d %s\n\n", best, days(best))
	fmt.Fprintf(&b, "📸 Done? Send a photo with the caption /complete %d\n\n", task.ID)
	b.WriteString(uc.voice.ReminderFooter(current))
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
