package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/log"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type harness struct {
	*Scheduler
	mu     sync.Mutex
	clock  time.Time
	timers []*fakeTimer
	fired  []Key
}

func newHarness(start time.Time) *harness {
	h := &harness{clock: start}
	h.Scheduler = NewScheduler(log.NewNop(), func(_ context.Context, key Key) {
		h.fired = append(h.fired, key)
	})
	h.Scheduler.now = func() time.Time {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.clock
	}
	h.Scheduler.after = func(d time.Duration, f func()) stopper {
		ft := &fakeTimer{d: d, f: f}
		h.timers = append(h.timers, ft)
		return ft
	}
	return h
}

func (h *harness) setClock(t time.Time) {
	h.mu.Lock()
	h.clock = t
	h.mu.Unlock()
}

func (h *harness) last() *fakeTimer {
	return h.timers[len(h.timers)-1]
}

func dailyTask(id int64, at model.ClockTime) model.Task {
	return model.Task{ID: id, UserID: 7, Name: "task", Timezone: "UTC", ReminderTime: at,
		IsActive: true, IsRecurring: true, RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 1}
}

func TestInstallArmsAndRearms(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	h := newHarness(start)

	if err := h.Install(context.Background(), dailyTask(1, model.Clock(8, 0))); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("Len = %d", h.Len())
	}
	first := h.last()
	if first.d != 2*time.Hour {
		t.Fatalf("first delay = %v, want 2h", first.d)
	}

	h.setClock(start.Add(2 * time.Hour))
	first.f()

	if len(h.fired) != 1 || h.fired[0] != (Key{UserID: 7, TaskID: 1}) {
		t.Fatalf("fired = %v", h.fired)
	}
	if len(h.timers) != 2 || h.last().d != 24*time.Hour {
		t.Fatalf("recurring trigger not re-armed for the next day: %d timers", len(h.timers))
	}
}

func TestInstallReplacesExisting(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_ = h.Install(ctx, dailyTask(1, model.Clock(8, 0)))
	old := h.last()
	_ = h.Install(ctx, dailyTask(1, model.Clock(9, 0)))

	if !old.stopped {
		t.Error("old timer should be stopped")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d", h.Len())
	}

	// a stale timer that fires anyway is dropped
	old.f()
	if len(h.fired) != 0 {
		t.Errorf("stale fire dispatched: %v", h.fired)
	}
}

func TestInactiveAndOneShot(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	task := dailyTask(1, model.Clock(8, 0))
	_ = h.Install(ctx, task)
	task.IsActive = false
	if err := h.Install(ctx, task); err != nil {
		t.Fatalf("Install inactive: %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("inactive task kept its trigger")
	}

	once := dailyTask(2, model.Clock(8, 0))
	once.IsRecurring = false
	_ = h.Install(ctx, once)
	timers := len(h.timers)
	h.last().f()
	if h.Len() != 0 || len(h.timers) != timers {
		t.Error("one-shot trigger should not re-arm")
	}
	if len(h.fired) != 1 {
		t.Errorf("fired = %v", h.fired)
	}
}

func TestInstallInvalidZone(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	task := dailyTask(1, model.Clock(8, 0))
	task.Timezone = "Nowhere/Land"
	if err := h.Install(context.Background(), task); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("err = %v", err)
	}
	if h.Len() != 0 {
		t.Error("failed install left a trigger")
	}
}

func TestReconcile(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_ = h.Install(ctx, dailyTask(1, model.Clock(8, 0)))
	_ = h.Install(ctx, dailyTask(2, model.Clock(9, 0)))
	kept := h.timers[0]

	bad := dailyTask(4, model.Clock(10, 0))
	bad.Timezone = "Bad/Zone"
	inactive := dailyTask(5, model.Clock(10, 0))
	inactive.IsActive = false

	res := h.Reconcile(ctx, []model.Task{
		dailyTask(1, model.Clock(8, 0)),
		dailyTask(3, model.Clock(7, 0)),
		bad,
		inactive,
	})

	want := ReconcileResult{Installed: 1, Kept: 1, Removed: 1, Failed: 1}
	if res != want {
		t.Fatalf("Reconcile = %+v, want %+v", res, want)
	}
	if kept.stopped {
		t.Error("unchanged trigger was re-armed")
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestNextRemindersSorted(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	late := dailyTask(1, model.Clock(20, 0))
	late.Name = "read"
	early := dailyTask(2, model.Clock(7, 0))
	early.Name = "run"
	other := dailyTask(3, model.Clock(6, 30))
	other.UserID = 99

	for _, task := range []model.Task{late, early, other} {
		if err := h.Install(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	got := h.NextReminders(7)
	if len(got) != 2 {
		t.Fatalf("got %d reminders", len(got))
	}
	if got[0].TaskName != "run" || got[1].TaskName != "read" {
		t.Errorf("order = %s, %s", got[0].TaskName, got[1].TaskName)
	}
	if got[0].NextFire.Hour() != 7 || got[0].Timezone != "UTC" {
		t.Errorf("first = %+v", got[0])
	}
}

func TestStartAndStop(t *testing.T) {
	h := newHarness(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	loads := 0
	h.Start(context.Background(), func(context.Context) ([]model.Task, error) {
		loads++
		return []model.Task{dailyTask(1, model.Clock(8, 0))}, nil
	}, time.Hour)

	if loads != 1 || h.Len() != 1 {
		t.Fatalf("loads = %d, Len = %d", loads, h.Len())
	}

	timer := h.last()
	h.Stop()
	if h.Len() != 0 || !timer.stopped {
		t.Error("Stop should clear every trigger")
	}
	timer.f()
	if len(h.fired) != 0 {
		t.Error("fire after Stop dispatched")
	}
}

func TestOneShotNotReinstalledByReconcile(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	h := newHarness(start)
	ctx := context.Background()

	once := dailyTask(2, model.Clock(8, 0))
	once.IsRecurring = false
	once.CreatedAt = start.Add(-time.Hour)

	if res := h.Reconcile(ctx, []model.Task{once}); res.Installed != 1 {
		t.Fatalf("first Reconcile = %+v", res)
	}
	h.setClock(start.Add(2 * time.Hour))
	h.last().f()

	for _, at := range []time.Time{start.Add(3 * time.Hour), start.Add(26 * time.Hour)} {
		h.setClock(at)
		res := h.Reconcile(ctx, []model.Task{once})
		if want := (ReconcileResult{Spent: 1}); res != want {
			t.Fatalf("Reconcile at %s = %+v, want %+v", at.Format(time.Kitchen), res, want)
		}
		if h.Len() != 0 {
			t.Fatalf("spent one-shot re-armed at %s", at.Format(time.Kitchen))
		}
	}
	if len(h.fired) != 1 {
		t.Errorf("fired = %v, want a single dispatch", h.fired)
	}
}
