package usecase

import (
	"context"
	"sort"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/streak/repository"
	"habit-streak-bot/pkg/datemath"
)

func location(sc model.Scope) *time.Location {
	loc, err := datemath.LoadLocation(sc.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (uc *implUseCase) today(sc model.Scope) time.Time {
	return datemath.DateOf(uc.now(), location(sc))
}

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, taskID int64) (streak.View, error) {
	rec, err := uc.repo.GetStreakRecord(ctx, sc.UserID, taskID)
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.Get: user=%d task=%d: %v", sc.UserID, taskID, err)
		return streak.View{}, err
	}
	if rec.Streak.ID == 0 {
		return streak.View{}, streak.ErrStreakNotFound
	}
	return streak.ViewOf(rec.Streak, rec.Task, uc.today(sc)), nil
}

func (uc *implUseCase) ListForUser(ctx context.Context, sc model.Scope) ([]streak.View, error) {
	recs, err := uc.repo.ListStreaks(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.ListForUser: user=%d: %v", sc.UserID, err)
		return nil, err
	}
	return views(recs, uc.today(sc)), nil
}

// views evaluates every record and orders by effective current streak.
func views(recs []repository.StreakRecord, today time.Time) []streak.View {
	out := make([]streak.View, 0, len(recs))
	for _, r := range recs {
		out = append(out, streak.ViewOf(r.Streak, r.Task, today))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CurrentStreak != out[j].CurrentStreak {
			return out[i].CurrentStreak > out[j].CurrentStreak
		}
		return out[i].LongestStreak > out[j].LongestStreak
	})
	return out
}

func (uc *implUseCase) CheckMaintenance(ctx context.Context, sc model.Scope) ([]streak.Maintenance, error) {
	all, err := uc.ListForUser(ctx, sc)
	if err != nil {
		return nil, err
	}

	var out []streak.Maintenance
	for _, v := range all {
		if !v.IsActive || v.DaysSinceCompletion == nil {
			continue
		}
		risk, remaining := streak.RiskOf(*v.DaysSinceCompletion)
		out = append(out, streak.Maintenance{
			View:          v,
			DaysSince:     *v.DaysSinceCompletion,
			Risk:          risk,
			DaysRemaining: remaining,
		})
	}
	return out, nil
}

func (uc *implUseCase) CompletionHistory(ctx context.Context, sc model.Scope, input streak.HistoryInput) ([]streak.HistoryEntry, error) {
	days := input.Days
	if days <= 0 {
		days = 30
	}
	recs, err := uc.repo.ListCompletions(ctx, repository.ListCompletionsOptions{
		UserID: sc.UserID,
		TaskID: input.TaskID,
		Since:  uc.today(sc).AddDate(0, 0, -days),
	})
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.CompletionHistory: user=%d: %v", sc.UserID, err)
		return nil, err
	}
	return history(recs), nil
}

func history(recs []repository.CompletionRecord) []streak.HistoryEntry {
	out := make([]streak.HistoryEntry, 0, len(recs))
	for _, r := range recs {
		name := r.TaskName
		if name == "" {
			name = "Unknown Task"
		}
		out = append(out, streak.HistoryEntry{Completion: r.Completion, TaskName: name})
	}
	return out
}
