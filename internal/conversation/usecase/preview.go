package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/schedule"
)

var titler = cases.Title(language.English)

func renderPreview(name string, tasks []schedule.GeneratedTask, advisories []string) string {
	var b strings.Builder
	b.WriteString(previewHeader)
	fmt.Fprintf(&b, "\n%s %s Schedule:\n", personality.Emoji(name), titler.String(name))

	for _, t := range tasks {
		b.WriteString("• ")
		b.WriteString(occurrenceLine(t))
		b.WriteString("\n")
	}

	if len(advisories) > 0 {
		b.WriteString("\nheads up:\n")
		for _, a := range advisories {
			b.WriteString("⚠️ ")
			b.WriteString(a)
			b.WriteString("\n")
		}
	}

	b.WriteString(previewFooter)
	return b.String()
}

func occurrenceLine(t schedule.GeneratedTask) string {
	at := t.ReminderTime.String()
	switch {
	case t.IntervalDays == 14 && t.AnchorWeekday != nil:
		return fmt.Sprintf("Every other %s at %s", *t.AnchorWeekday, at)
	case t.IntervalDays == 2:
		return "Every other day at " + at
	case t.IntervalDays > 0:
		return fmt.Sprintf("Every %d days at %s", t.IntervalDays, at)
	case t.DaysOfWeek.Len() == 7:
		return "Every day at " + at
	}
	return fmt.Sprintf("%s at %s", t.DaysOfWeek.Names(), at)
}
