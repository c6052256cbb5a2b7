package telegram

import (
	"errors"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/user"
	"habit-streak-bot/internal/validation"
)

// errorMessage maps domain errors to user-facing text. Anything unknown is
// a persistence or dependency failure and gets the generic apology.
func (h *handler) errorMessage(err error) string {
	var uerr *usageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &uerr):
		return uerr.usage
	case errors.Is(err, errBadTaskID), errors.Is(err, errBadDays), errors.Is(err, errNoEditArgs):
		return "❌ " + err.Error()

	case errors.Is(err, task.ErrInvalidName):
		return "❌ task names need 2-100 characters and no < > @ # &"
	case errors.Is(err, task.ErrInvalidDescription):
		return "❌ description is too long (max 500 characters)"
	case errors.Is(err, task.ErrInvalidTime):
		return "❌ couldn't read that time, try 07:30, 7pm or morning"
	case errors.Is(err, task.ErrNoChanges):
		return "nothing changed"
	case errors.Is(err, user.ErrInvalidTimezone):
		return "❌ unknown timezone, use an IANA name like America/New_York or Europe/London"
	case errors.Is(err, user.ErrInvalidName):
		return "❌ names need 2-50 letters, numbers or spaces"
	case errors.Is(err, validation.ErrImageType):
		return "❌ " + validation.ErrImageType.Error()
	case errors.Is(err, validation.ErrImageTooLarge):
		return "❌ " + err.Error()
	case errors.Is(err, validation.ErrImageName):
		return "❌ that file type isn't allowed"
	case errors.Is(err, completion.ErrNoImage):
		return "📸 attach a photo: " + usageComplete

	case errors.Is(err, task.ErrTaskNotFound), errors.Is(err, streak.ErrStreakNotFound), errors.Is(err, user.ErrUserNotFound):
		return "❌ not found, check the id with /tasks"
	case errors.Is(err, completion.ErrTaskInactive):
		return "⏸️ that task is paused, /toggle_task it first"

	case errors.Is(err, streak.ErrAlreadyCompleted):
		return "you already logged that one today"

	case errors.Is(err, quota.ErrQuotaExceeded):
		return "yo you've hit your daily AI limit, try again tomorrow 🤖"
	case errors.Is(err, completion.ErrDownload):
		return "oof couldn't download that image, try uploading again 📸"
	case errors.Is(err, task.ErrResyncIncomplete):
		return "⚠️ saved, but some reminders could not be rescheduled yet; they will catch up within the hour"
	}
	return msgGeneric
}
