package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habit-streak-bot/config"
	dbsqlite "habit-streak-bot/config/sqlite"
	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/conversation/repository"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/pkg/log"
)

func setup(t *testing.T) repository.Repository {
	t.Helper()
	db, err := dbsqlite.Connect(context.Background(), config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "bot.db")})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, log.NewNop())
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	got, err := repo.Get(ctx, 1)
	if err != nil || got.UserID != 0 {
		t.Fatalf("Get on empty = %+v, %v", got, err)
	}

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	at := model.Clock(7, 0)
	c := conversation.Start(1, now, conversation.DefaultTimeout)
	c.State = conversation.StateConfirmation
	c.Context = conversation.Context{
		Name:     "Ana",
		GoalType: "fitness",
		Intent: &intent.Intent{ActivityName: "work out", Frequency: intent.FrequencyWeeklyCount,
			Count: 3, TimePreference: "7 AM", Confidence: 0.9},
		ParsedTime: &at,
	}
	c.PendingTasks = []schedule.GeneratedTask{
		{DisplayName: "work out (Monday)", ReminderTime: at, DaysOfWeek: model.NewWeekdaySet(model.Monday)},
	}
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c.Context.Name = "Ana B"
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, err = repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != conversation.StateConfirmation || got.Context.Name != "Ana B" {
		t.Errorf("got %+v", got)
	}
	if got.Context.Intent == nil || got.Context.Intent.Count != 3 || got.Context.ParsedTime.String() != "07:00" {
		t.Errorf("context = %+v", got.Context)
	}
	if len(got.PendingTasks) != 1 || !got.PendingTasks[0].DaysOfWeek.Has(model.Monday) {
		t.Errorf("pending = %+v", got.PendingTasks)
	}
	if !got.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v", got.ExpiresAt)
	}
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_ = repo.Save(ctx, conversation.Start(1, now.Add(-25*time.Hour), conversation.DefaultTimeout))
	_ = repo.Save(ctx, conversation.Start(2, now.Add(-time.Hour), conversation.DefaultTimeout))

	n, err := repo.DeleteExpired(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpired = %d, %v", n, err)
	}
	if c, _ := repo.Get(ctx, 2); c.UserID != 2 {
		t.Error("live conversation removed")
	}

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if c, _ := repo.Get(ctx, 2); c.UserID != 0 {
		t.Error("Delete left the row")
	}
}
