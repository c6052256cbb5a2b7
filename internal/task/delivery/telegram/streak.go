package telegram

import (
	"context"
	"fmt"
	"strings"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/pkg/datemath"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

const photoMimeType = "image/jpeg"

func (h *handler) complete(ctx context.Context, chatID int64, sc model.Scope, args string, msg *pkgTelegram.Message) error {
	if args == "" {
		return &usageError{usageComplete}
	}
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	up, ok := uploadOf(msg)
	if !ok {
		return completion.ErrNoImage
	}

	if err := h.send(ctx, chatID, "🔍 checking your proof..."); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	out, err := h.completions.Complete(ctx, sc, completion.CompleteInput{TaskID: id, Upload: up})
	if err != nil {
		return err
	}
	return h.send(ctx, chatID, h.renderOutcome(out))
}

// uploadOf picks the largest photo size, or an image document.
func uploadOf(msg *pkgTelegram.Message) (completion.Upload, bool) {
	if p := msg.LargestPhoto(); p != nil {
		return completion.Upload{FileID: p.FileID, MimeType: photoMimeType, Size: p.FileSize}, true
	}
	if d := msg.Document; d != nil {
		return completion.Upload{FileID: d.FileID, FileName: d.FileName, MimeType: d.MimeType, Size: d.FileSize}, true
	}
	return completion.Upload{}, false
}

func (h *handler) renderOutcome(out completion.Outcome) string {
	c := out.Completion
	if out.Duplicate {
		return fmt.Sprintf("you already logged %s today (%s). come back tomorrow 😤", out.Task.Name, verdictLabel(c.Verified))
	}

	var b strings.Builder
	v := out.Verdict
	if v.Response != "" {
		b.WriteString(v.Response)
	} else {
		b.WriteString(h.voice.CompletionResponse(v.Verified, v.Confidence))
	}
	fmt.Fprintf(&b, "\n\n%s · confidence %d%%\n%s", verdictLabel(v.Verified), v.Confidence, v.Explanation)

	if !v.Verified {
		b.WriteString("\n\ntry another photo that clearly shows the task done")
		return b.String()
	}
	s := out.Streak
	fmt.Fprintf(&b, "\n\n🔥 streak: %d · best: %d", s.CurrentStreak, s.LongestStreak)
	if s.CurrentStreak >= 7 {
		b.WriteString("\n" + h.voice.Celebration(out.Task.Name, s.CurrentStreak))
	}
	if s.IsNewRecord {
		b.WriteString("\n" + h.voice.NewRecord(s.CurrentStreak))
	}
	return b.String()
}

func verdictLabel(verified bool) string {
	if verified {
		return "✅ verified"
	}
	return "❌ not verified"
}

func (h *handler) listStreaks(ctx context.Context, chatID int64, sc model.Scope, _ string, _ *pkgTelegram.Message) error {
	views, err := h.streaks.ListForUser(ctx, sc)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		return h.send(ctx, chatID, "no streaks yet, create a task and send your first proof 📸")
	}

	var b strings.Builder
	b.WriteString("🔥 your streaks\n")
	for _, v := range views {
		writeStreakLine(&b, v)
	}

	risky, err := h.streaks.CheckMaintenance(ctx, sc)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: CheckMaintenance user=%d: %v", sc.UserID, err)
	}
	for _, m := range risky {
		if m.Risk == streak.RiskHigh {
			fmt.Fprintf(&b, "\n⚠️ %s breaks in %d day(s) without proof", m.TaskName, m.DaysRemaining)
		}
	}
	return h.send(ctx, chatID, b.String())
}

func writeStreakLine(b *strings.Builder, v streak.View) {
	fmt.Fprintf(b, "#%d %s: %d (best %d)", v.TaskID, v.TaskName, v.CurrentStreak, v.LongestStreak)
	if v.LastCompletion != nil {
		fmt.Fprintf(b, " · last %s", datemath.FormatDate(*v.LastCompletion))
	}
	b.WriteString("\n")
}

func (h *handler) stats(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	if args != "" {
		id, err := parseTaskID(args)
		if err != nil {
			return err
		}
		v, err := h.streaks.Get(ctx, sc, id)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "📊 %s\n", v.TaskName)
		writeStreakLine(&b, v)
		if v.DaysSinceCompletion != nil {
			fmt.Fprintf(&b, "days since last proof: %d", *v.DaysSinceCompletion)
		}
		return h.send(ctx, chatID, b.String())
	}

	st, err := h.streaks.Statistics(ctx, sc)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("📊 last 30 days\n")
	fmt.Fprintf(&b, "tasks: %d · active streaks: %d\n", st.TotalTasks, st.ActiveStreaks)
	fmt.Fprintf(&b, "longest streak: %d · current total: %d\n", st.LongestStreak, st.CurrentTotalStreak)
	fmt.Fprintf(&b, "completion rate: %.1f%% (on due days %.1f%%)\n", st.CompletionRate30d, st.CadenceRate30d)
	fmt.Fprintf(&b, "completions: %d in 7 days, %d in 30 days\n", st.RecentCompletions7d, st.TotalCompletions30d)
	if len(st.TopStreaks) > 0 {
		b.WriteString("\ntop streaks\n")
		for _, v := range st.TopStreaks {
			writeStreakLine(&b, v)
		}
	}
	return h.send(ctx, chatID, b.String())
}

func (h *handler) history(ctx context.Context, chatID int64, sc model.Scope, args string, _ *pkgTelegram.Message) error {
	days, err := parseDays(args, sc.Timezone, h.now())
	if err != nil {
		return err
	}
	entries, err := h.streaks.CompletionHistory(ctx, sc, streak.HistoryInput{Days: days})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return h.send(ctx, chatID, fmt.Sprintf("no completions in the last %d days", days))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ last %d days\n", days)
	for _, e := range entries {
		mark := "❌"
		if e.Verified {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s %s\n", datemath.FormatDate(e.CompletionDate), mark, e.TaskName)
	}
	return h.send(ctx, chatID, b.String())
}

func (h *handler) next(ctx context.Context, chatID int64, sc model.Scope, _ string, _ *pkgTelegram.Message) error {
	upcoming := h.reminders.NextReminders(ctx, sc)
	if len(upcoming) == 0 {
		return h.send(ctx, chatID, "⏰ no reminders scheduled")
	}

	var b strings.Builder
	b.WriteString("⏰ upcoming reminders\n")
	for _, u := range upcoming {
		fmt.Fprintf(&b, "%s · %s\n", u.NextFire.Format("Mon Jan 2 15:04 MST"), u.TaskName)
	}
	return h.send(ctx, chatID, b.String())
}
