package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/reminder"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/pkg/log"
	"habit-streak-bot/pkg/telegram"
)

type mockTasks struct {
	tasks map[int64]model.Task
	err   error
}

func (m *mockTasks) GetTask(_ context.Context, id int64) (model.Task, error) {
	return m.tasks[id], m.err
}

func (m *mockTasks) ListActiveTasks(context.Context) ([]model.Task, error) {
	var out []model.Task
	for _, t := range m.tasks {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, m.err
}

type mockUsers struct{}

func (mockUsers) GetUser(_ context.Context, id int64) (model.User, error) {
	return model.User{ID: id, Username: "Ana"}, nil
}

type mockStreaks struct {
	streak.UseCase
	view streak.View
	err  error
}

func (m *mockStreaks) Get(context.Context, model.Scope, int64) (streak.View, error) {
	return m.view, m.err
}

type mockMessenger struct {
	status telegram.DeliveryStatus
	err    error
	sent   []string
}

func (m *mockMessenger) SendDirectMessage(_ context.Context, _ int64, text string) (telegram.DeliveryStatus, error) {
	m.sent = append(m.sent, text)
	return m.status, m.err
}

func newTestUseCase(t *testing.T, tasks *mockTasks, streaks *mockStreaks, msg *mockMessenger) *implUseCase {
	t.Helper()
	voice, err := personality.New(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	return New(log.NewNop(), tasks, mockUsers{}, streaks, voice, msg).(*implUseCase)
}

func activeTask() model.Task {
	return model.Task{ID: 5, UserID: 1, Name: "read", Description: "20 pages", Timezone: "UTC",
		ReminderTime: model.Clock(21, 0), IsActive: true, IsRecurring: true, RecurrencePattern: model.RecurrenceDaily}
}

func TestSendReminder(t *testing.T) {
	tasks := &mockTasks{tasks: map[int64]model.Task{5: activeTask()}}
	streaks := &mockStreaks{view: streak.View{CurrentStreak: 3, LongestStreak: 8}}
	msg := &mockMessenger{status: telegram.Delivered}
	uc := newTestUseCase(t, tasks, streaks, msg)

	if err := uc.SendReminder(context.Background(), reminder.Key{UserID: 1, TaskID: 5}); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if len(msg.sent) != 1 {
		t.Fatalf("sent %d messages", len(msg.sent))
	}
	text := msg.sent[0]
	for _, want := range []string{
		"⏰ Time for: read",
		"day 4 of read",
		"📝 20 pages",
		"🔥 Current Streak: 3 days",
		"🏆 Best Streak: 8 days",
		"/complete 5",
		"Building momentum",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}
}

func TestSendReminderErrors(t *testing.T) {
	inactive := activeTask()
	inactive.IsActive = false
	foreign := activeTask()
	foreign.UserID = 2

	tests := []struct {
		name    string
		task    model.Task
		status  telegram.DeliveryStatus
		sendErr error
		wantErr error
		sends   int
	}{
		{"missing task", model.Task{}, telegram.Delivered, nil, reminder.ErrTaskNotFound, 0},
		{"other owner", foreign, telegram.Delivered, nil, reminder.ErrTaskNotFound, 0},
		{"inactive", inactive, telegram.Delivered, nil, reminder.ErrTaskInactive, 0},
		{"forbidden", activeTask(), telegram.Forbidden, nil, reminder.ErrUnreachable, 1},
		{"not found", activeTask(), telegram.NotFound, nil, reminder.ErrUnreachable, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &mockTasks{tasks: map[int64]model.Task{5: tt.task}}
			msg := &mockMessenger{status: tt.status, err: tt.sendErr}
			uc := newTestUseCase(t, tasks, &mockStreaks{}, msg)

			err := uc.SendReminder(context.Background(), reminder.Key{UserID: 1, TaskID: 5})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(msg.sent) != tt.sends {
				t.Errorf("sent %d, want %d", len(msg.sent), tt.sends)
			}
		})
	}
}

func TestSendReminderWithoutStreak(t *testing.T) {
	tasks := &mockTasks{tasks: map[int64]model.Task{5: activeTask()}}
	msg := &mockMessenger{status: telegram.Delivered}
	uc := newTestUseCase(t, tasks, &mockStreaks{err: errors.New("db down")}, msg)

	if err := uc.SendReminder(context.Background(), reminder.Key{UserID: 1, TaskID: 5}); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if !strings.Contains(msg.sent[0], "Current Streak: 0 days") {
		t.Errorf("message = %s", msg.sent[0])
	}
}

func TestSyncAndNext(t *testing.T) {
	uc := newTestUseCase(t, &mockTasks{}, &mockStreaks{}, &mockMessenger{})
	ctx := context.Background()
	defer uc.Stop()

	task := activeTask()
	if err := uc.Sync(ctx, task); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	next := uc.NextReminders(ctx, model.Scope{UserID: 1})
	if len(next) != 1 || next[0].TaskID != 5 || next[0].NextFire.Hour() != 21 {
		t.Fatalf("NextReminders = %+v", next)
	}

	task.IsActive = false
	if err := uc.Sync(ctx, task); err != nil {
		t.Fatalf("Sync inactive: %v", err)
	}
	if len(uc.NextReminders(ctx, model.Scope{UserID: 1})) != 0 {
		t.Error("deactivated task still scheduled")
	}

	_ = uc.Sync(ctx, activeTask())
	uc.Unschedule(ctx, reminder.Key{UserID: 1, TaskID: 5})
	if len(uc.NextReminders(ctx, model.Scope{UserID: 1})) != 0 {
		t.Error("Unschedule left the trigger")
	}
}
