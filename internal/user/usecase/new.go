package usecase

import (
	"time"

	"habit-streak-bot/internal/user"
	"habit-streak-bot/internal/user/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l           pkgLog.Logger
	repo        repository.Repository
	rescheduler user.Rescheduler
	defaultTZ   string
	now         func() time.Time
}

// New creates the user UseCase. New users get defaultTZ until they set one.
func New(l pkgLog.Logger, repo repository.Repository, rescheduler user.Rescheduler, defaultTZ string) user.UseCase {
	return &implUseCase{
		l:           l,
		repo:        repo,
		rescheduler: rescheduler,
		defaultTZ:   defaultTZ,
		now:         time.Now,
	}
}
