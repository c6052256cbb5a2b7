package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/quota/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

const (
	maxTrackedUsers = 1000
	limiterTTL      = 10 * time.Minute
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	dailyLimit int
	limiters   *expirable.LRU[int64, *rate.Limiter]
	rate       rate.Limit
	burst      int
	now        func() time.Time
}

// New creates the quota UseCase: dailyLimit model calls per UTC day and at
// most burstPerMinute in any minute.
func New(l pkgLog.Logger, repo repository.Repository, dailyLimit, burstPerMinute int) quota.UseCase {
	if burstPerMinute < 1 {
		burstPerMinute = 1
	}
	return &implUseCase{
		l:          l,
		repo:       repo,
		dailyLimit: dailyLimit,
		limiters:   expirable.NewLRU[int64, *rate.Limiter](maxTrackedUsers, nil, limiterTTL),
		rate:       rate.Limit(float64(burstPerMinute) / 60.0),
		burst:      burstPerMinute,
		now:        time.Now,
	}
}
