package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/quota/repository"
)

func (uc *implUseCase) Allow(ctx context.Context, sc model.Scope) (bool, error) {
	now := uc.now()
	if uc.limiter(sc.UserID).TokensAt(now) < 1 {
		uc.l.Debugf(ctx, "uc.Allow: user=%d over the per-minute burst", sc.UserID)
		return false, nil
	}

	used, err := uc.used(ctx, sc.UserID, now)
	if err != nil {
		return false, err
	}
	return used < uc.dailyLimit, nil
}

func (uc *implUseCase) Record(ctx context.Context, sc model.Scope, input quota.RecordInput) error {
	now := uc.now()
	uc.limiter(sc.UserID).AllowN(now, 1)

	calls, err := uc.repo.IncrementUsage(ctx, sc.UserID, dayStart(now), now)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Record IncrementUsage: user=%d: %v", sc.UserID, err)
		return err
	}
	if err := uc.repo.CreateUsageLog(ctx, repository.CreateUsageLogOptions{
		UserID:   sc.UserID,
		Endpoint: input.Endpoint,
		Tokens:   input.Tokens,
		At:       now,
	}); err != nil {
		uc.l.Warnf(ctx, "uc.Record CreateUsageLog: user=%d: %v", sc.UserID, err)
	}

	uc.l.Debugf(ctx, "uc.Record: user=%d endpoint=%s tokens=%d calls_today=%d", sc.UserID, input.Endpoint, input.Tokens, calls)
	return nil
}

func (uc *implUseCase) Remaining(ctx context.Context, sc model.Scope) (int, error) {
	used, err := uc.used(ctx, sc.UserID, uc.now())
	if err != nil {
		return 0, err
	}
	if left := uc.dailyLimit - used; left > 0 {
		return left, nil
	}
	return 0, nil
}

// used is today's call count; a counter last reset before today reads as zero.
func (uc *implUseCase) used(ctx context.Context, userID int64, now time.Time) (int, error) {
	u, err := uc.repo.GetUsage(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.used GetUsage: user=%d: %v", userID, err)
		return 0, err
	}
	if u.LastReset.Before(dayStart(now)) {
		return 0, nil
	}
	return u.Calls, nil
}

func (uc *implUseCase) limiter(userID int64) *rate.Limiter {
	if l, ok := uc.limiters.Get(userID); ok {
		return l
	}
	l := rate.NewLimiter(uc.rate, uc.burst)
	uc.limiters.Add(userID, l)
	return l
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
