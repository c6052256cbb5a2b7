package usecase

import (
	"time"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	tasks     task.UseCase
	streaks   streak.UseCase
	quota     quota.UseCase
	verifier  completion.Verifier
	images    completion.ImageSource
	maxSizeMB int
	now       func() time.Time
}

// Deps are the collaborators of the completion UseCase.
type Deps struct {
	Tasks     task.UseCase
	Streaks   streak.UseCase
	Quota     quota.UseCase
	Verifier  completion.Verifier
	Images    completion.ImageSource
	MaxSizeMB int
}

// New creates the completion UseCase.
func New(l pkgLog.Logger, d Deps) completion.UseCase {
	return &implUseCase{
		l:         l,
		tasks:     d.Tasks,
		streaks:   d.Streaks,
		quota:     d.Quota,
		verifier:  d.Verifier,
		images:    d.Images,
		maxSizeMB: d.MaxSizeMB,
		now:       time.Now,
	}
}
