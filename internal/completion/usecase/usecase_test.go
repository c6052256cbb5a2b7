package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/validation"
	"habit-streak-bot/pkg/log"
	"habit-streak-bot/pkg/telegram"
)

type mockTasks struct {
	task.UseCase
	tasks map[int64]model.Task
}

func (m *mockTasks) Get(_ context.Context, sc model.Scope, id int64) (model.Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != sc.UserID {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

type mockStreaks struct {
	streak.UseCase
	completions map[time.Time]model.Completion
	recorded    []streak.RecordInput
}

func (m *mockStreaks) CompletionOn(_ context.Context, _ model.Scope, in streak.RecordInput) (model.Completion, error) {
	return m.completions[in.CompletionDate], nil
}

func (m *mockStreaks) SaveCompletion(_ context.Context, sc model.Scope, in streak.SaveCompletionInput) (model.Completion, error) {
	if _, ok := m.completions[in.CompletionDate]; ok {
		return model.Completion{}, streak.ErrAlreadyCompleted
	}
	c := model.Completion{
		ID:             int64(len(m.completions) + 1),
		UserID:         sc.UserID,
		TaskID:         in.TaskID,
		CompletionDate: in.CompletionDate,
		Verified:       in.Verified,
		Confidence:     in.Confidence,
	}
	m.completions[in.CompletionDate] = c
	return c, nil
}

func (m *mockStreaks) RecordCompletion(_ context.Context, _ model.Scope, in streak.RecordInput) (streak.Result, error) {
	m.recorded = append(m.recorded, in)
	return streak.Result{CurrentStreak: len(m.recorded), LongestStreak: len(m.recorded), Changed: true}, nil
}

type mockQuota struct {
	allow    bool
	recorded []quota.RecordInput
}

func (m *mockQuota) Allow(context.Context, model.Scope) (bool, error) { return m.allow, nil }

func (m *mockQuota) Record(_ context.Context, _ model.Scope, in quota.RecordInput) error {
	m.recorded = append(m.recorded, in)
	return nil
}

func (m *mockQuota) Remaining(context.Context, model.Scope) (int, error) { return 0, nil }

type fakeVerifier struct {
	verdict completion.Verdict
	calls   int
}

func (f *fakeVerifier) Verify(context.Context, completion.VerifyInput) completion.Verdict {
	f.calls++
	return f.verdict
}

type fakeImages struct {
	data []byte
	mime string
	err  error
}

func (f fakeImages) FetchFile(context.Context, string, int64) ([]byte, string, error) {
	return f.data, f.mime, f.err
}

type harness struct {
	uc       *implUseCase
	streaks  *mockStreaks
	quota    *mockQuota
	verifier *fakeVerifier
}

func newHarness(verdict completion.Verdict, images fakeImages) harness {
	h := harness{
		streaks:  &mockStreaks{completions: make(map[time.Time]model.Completion)},
		quota:    &mockQuota{allow: true},
		verifier: &fakeVerifier{verdict: verdict},
	}
	tasks := &mockTasks{tasks: map[int64]model.Task{
		1: {ID: 1, UserID: 7, Name: "workout", IsActive: true, Timezone: "UTC"},
		2: {ID: 2, UserID: 7, Name: "read", IsActive: false, Timezone: "UTC"},
		3: {ID: 3, UserID: 8, Name: "swim", IsActive: true, Timezone: "UTC"},
	}}
	h.uc = New(log.NewNop(), Deps{
		Tasks:     tasks,
		Streaks:   h.streaks,
		Quota:     h.quota,
		Verifier:  h.verifier,
		Images:    images,
		MaxSizeMB: 10,
	}).(*implUseCase)
	// 23:30 UTC on Mar 2 is already Mar 3 in Tokyo
	h.uc.now = func() time.Time { return time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC) }
	return h
}

var (
	scope    = model.Scope{UserID: 7, Timezone: "Asia/Tokyo"}
	pngBytes = []byte("\x89PNG\r\n\x1a\n")
	photo    = completion.Upload{FileID: "file-1", MimeType: "image/jpeg", Size: 2048}
)

func TestCompleteVerified(t *testing.T) {
	h := newHarness(
		completion.Verdict{Verified: true, Confidence: 90, ModelCalled: true, Tokens: 150},
		fakeImages{data: pngBytes, mime: "image/png"},
	)

	out, err := h.uc.Complete(context.Background(), scope, completion.CompleteInput{TaskID: 1, Upload: photo})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Duplicate || !out.Completion.Verified || out.Streak.CurrentStreak != 1 {
		t.Errorf("outcome = %+v", out)
	}
	wantDate := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	if !out.Completion.CompletionDate.Equal(wantDate) {
		t.Errorf("completion date = %s, want local date %s", out.Completion.CompletionDate, wantDate)
	}
	if len(h.quota.recorded) != 1 || h.quota.recorded[0].Endpoint != quota.EndpointVerification || h.quota.recorded[0].Tokens != 150 {
		t.Errorf("quota records = %+v", h.quota.recorded)
	}

	again, err := h.uc.Complete(context.Background(), scope, completion.CompleteInput{TaskID: 1, Upload: photo})
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if !again.Duplicate || again.Completion.ID != out.Completion.ID {
		t.Errorf("second outcome = %+v", again)
	}
	if h.verifier.calls != 1 || len(h.streaks.recorded) != 1 {
		t.Errorf("duplicate reached the model or streak: verifier=%d streak=%d", h.verifier.calls, len(h.streaks.recorded))
	}
}

func TestCompleteUnverifiedKeepsRow(t *testing.T) {
	h := newHarness(
		completion.Verdict{Confidence: 20, ModelCalled: true},
		fakeImages{data: pngBytes, mime: "image/png"},
	)

	out, err := h.uc.Complete(context.Background(), scope, completion.CompleteInput{TaskID: 1, Upload: photo})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Completion.ID == 0 || out.Completion.Verified {
		t.Errorf("completion = %+v", out.Completion)
	}
	if len(h.streaks.recorded) != 0 || out.Streak.CurrentStreak != 0 {
		t.Error("unverified completion advanced the streak")
	}
}

func TestCompleteModelDownIsNotMetered(t *testing.T) {
	h := newHarness(completion.Verdict{}, fakeImages{data: pngBytes, mime: "image/png"})

	out, err := h.uc.Complete(context.Background(), scope, completion.CompleteInput{TaskID: 1, Upload: photo})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Completion.Verified || len(h.quota.recorded) != 0 {
		t.Errorf("outcome = %+v, quota = %+v", out, h.quota.recorded)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  completion.CompleteInput
		images fakeImages
		noQuo  bool
		want   error
	}{
		{
			name:  "no image",
			input: completion.CompleteInput{TaskID: 1},
			want:  completion.ErrNoImage,
		},
		{
			name:  "bad type",
			input: completion.CompleteInput{TaskID: 1, Upload: completion.Upload{FileID: "f", FileName: "a.pdf", MimeType: "application/pdf"}},
			want:  validation.ErrImageType,
		},
		{
			name:  "too large upfront",
			input: completion.CompleteInput{TaskID: 1, Upload: completion.Upload{FileID: "f", MimeType: "image/png", Size: 50 << 20}},
			want:  validation.ErrImageTooLarge,
		},
		{
			name:  "not owned",
			input: completion.CompleteInput{TaskID: 3, Upload: photo},
			want:  task.ErrTaskNotFound,
		},
		{
			name:  "inactive",
			input: completion.CompleteInput{TaskID: 2, Upload: photo},
			want:  completion.ErrTaskInactive,
		},
		{
			name:  "quota",
			input: completion.CompleteInput{TaskID: 1, Upload: photo},
			noQuo: true,
			want:  quota.ErrQuotaExceeded,
		},
		{
			name:   "download too large",
			input:  completion.CompleteInput{TaskID: 1, Upload: photo},
			images: fakeImages{err: telegram.ErrFileTooLarge},
			want:   validation.ErrImageTooLarge,
		},
		{
			name:   "download failed",
			input:  completion.CompleteInput{TaskID: 1, Upload: photo},
			images: fakeImages{err: errors.New("502")},
			want:   completion.ErrDownload,
		},
		{
			name:   "downloaded file is not an image",
			input:  completion.CompleteInput{TaskID: 1, Upload: photo},
			images: fakeImages{data: []byte("hello"), mime: "text/plain"},
			want:   validation.ErrImageType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(completion.Verdict{Verified: true, ModelCalled: true}, tt.images)
			h.quota.allow = !tt.noQuo

			_, err := h.uc.Complete(context.Background(), scope, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if h.verifier.calls != 0 || len(h.streaks.completions) != 0 {
				t.Error("a rejected completion reached the model or the log")
			}
		})
	}
}
