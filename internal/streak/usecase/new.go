package usecase

import (
	"time"

	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/streak/repository"
	"habit-streak-bot/pkg/keylock"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	locks *keylock.Locker[streak.Key]
	now   func() time.Time
}

// New creates the streak UseCase.
func New(l pkgLog.Logger, repo repository.Repository) streak.UseCase {
	return &implUseCase{
		l:     l,
		repo:  repo,
		locks: keylock.New[streak.Key](),
		now:   time.Now,
	}
}
