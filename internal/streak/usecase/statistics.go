package usecase

import (
	"context"
	"math"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/streak/repository"
	"habit-streak-bot/pkg/datemath"
)

const (
	rollupDays      = 30
	recentDays      = 7
	topStreaks      = 5
	lastCompletions = 10
)

func (uc *implUseCase) Statistics(ctx context.Context, sc model.Scope) (streak.Statistics, error) {
	today := uc.today(sc)

	recs, err := uc.repo.ListStreaks(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.Statistics: streaks user=%d: %v", sc.UserID, err)
		return streak.Statistics{}, err
	}
	comps, err := uc.repo.ListCompletions(ctx, repository.ListCompletionsOptions{
		UserID: sc.UserID,
		Since:  today.AddDate(0, 0, -rollupDays),
	})
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.Statistics: completions user=%d: %v", sc.UserID, err)
		return streak.Statistics{}, err
	}

	all := views(recs, today)
	entries := history(comps)

	st := streak.Statistics{
		TotalTasks:          len(all),
		TotalCompletions30d: len(entries),
	}
	for _, v := range all {
		if v.IsActive {
			st.ActiveStreaks++
			st.CurrentTotalStreak += v.CurrentStreak
		}
		st.LongestStreak = max(st.LongestStreak, v.LongestStreak)
	}

	if possible := st.TotalTasks * rollupDays; possible > 0 {
		st.CompletionRate30d = round1(float64(st.TotalCompletions30d) / float64(possible) * 100)
	}
	st.CadenceRate30d = cadenceRate(recs, comps, today, location(sc))

	weekAgo := today.AddDate(0, 0, -recentDays)
	for _, e := range entries {
		if !e.CompletionDate.Before(weekAgo) {
			st.RecentCompletions7d++
		}
	}

	st.TopStreaks = all[:min(len(all), topStreaks)]
	st.RecentCompletions = entries[:min(len(entries), lastCompletions)]
	return st, nil
}

// cadenceRate divides completions by the days each task was actually due in
// the last 30 days, counting from the task's creation date in loc.
func cadenceRate(recs []repository.StreakRecord, comps []repository.CompletionRecord, today time.Time, loc *time.Location) float64 {
	start := today.AddDate(0, 0, -(rollupDays - 1))

	due := 0
	tasks := make(map[int64]bool, len(recs))
	for _, r := range recs {
		tasks[r.Task.ID] = true
		from := start
		if created := datemath.DateOf(r.Task.CreatedAt, loc); created.After(from) {
			from = created
		}
		for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
			if r.Task.OccursOn(d) {
				due++
			}
		}
	}
	if due == 0 {
		return 0
	}

	done := 0
	for _, c := range comps {
		if tasks[c.Completion.TaskID] && !c.Completion.CompletionDate.Before(start) {
			done++
		}
	}
	return round1(math.Min(100, float64(done)/float64(due)*100))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
