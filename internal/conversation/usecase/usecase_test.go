package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/conversation/store"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/user"
	"habit-streak-bot/pkg/log"
)

// --- mocks ---

type mockRepo struct {
	rows      map[int64]conversation.Conversation
	failSaves int
}

func (m *mockRepo) Get(_ context.Context, id int64) (conversation.Conversation, error) {
	return m.rows[id], nil
}

func (m *mockRepo) Save(_ context.Context, c conversation.Conversation) error {
	if m.failSaves > 0 {
		m.failSaves--
		return errors.New("disk full")
	}
	m.rows[c.UserID] = c
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *mockRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, c := range m.rows {
		if c.Expired(now) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

type mockUsers struct {
	users map[int64]model.User
}

func (m *mockUsers) Get(_ context.Context, id int64) (model.User, error) {
	return m.users[id], nil
}

func (m *mockUsers) Ensure(_ context.Context, sc model.Scope) (model.User, error) {
	u := m.users[sc.UserID]
	u.ID = sc.UserID
	m.users[sc.UserID] = u
	return u, nil
}

func (m *mockUsers) Register(ctx context.Context, sc model.Scope, in user.RegisterInput) (model.User, error) {
	return m.SetName(ctx, sc, in.Username)
}

func (m *mockUsers) SetTimezone(_ context.Context, sc model.Scope, tz string) (model.User, error) {
	u := m.users[sc.UserID]
	u.Timezone = tz
	m.users[sc.UserID] = u
	return u, nil
}

func (m *mockUsers) SetName(_ context.Context, sc model.Scope, name string) (model.User, error) {
	u := m.users[sc.UserID]
	u.ID = sc.UserID
	u.Username = name
	m.users[sc.UserID] = u
	return u, nil
}

type mockTasks struct {
	task.UseCase
	plans     []task.PlanInput
	createErr error
}

func (m *mockTasks) CreatePlanned(_ context.Context, sc model.Scope, in task.PlanInput) (model.Task, error) {
	if m.createErr != nil {
		return model.Task{}, m.createErr
	}
	m.plans = append(m.plans, in)
	return model.Task{ID: int64(len(m.plans)), UserID: sc.UserID, Name: in.Name}, nil
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

// fakeParser answers from a table and falls back to the rules.
type fakeParser struct {
	intent.Parser
	answers map[string]intent.Intent
	calls   []intent.ParseInput
}

func (f *fakeParser) Parse(_ context.Context, in intent.ParseInput) intent.ParseOutput {
	f.calls = append(f.calls, in)
	if i, ok := f.answers[in.Text]; ok {
		return intent.ParseOutput{Intent: i, ModelCalled: in.UseModel, Tokens: 42}
	}
	return intent.ParseOutput{Intent: f.Parser.ParseRules(in.Text)}
}

// --- harness ---

type harness struct {
	uc     *implUseCase
	repo   *mockRepo
	users  *mockUsers
	tasks  *mockTasks
	quota  *mockQuota
	parser *fakeParser
	now    time.Time
}

var scope = model.Scope{UserID: 7, Timezone: "UTC"}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:  &mockRepo{rows: make(map[int64]conversation.Conversation)},
		users: &mockUsers{users: make(map[int64]model.User)},
		tasks: &mockTasks{},
		quota: &mockQuota{allow: true},
		parser: &fakeParser{
			Parser: intent.New(nil, log.NewNop()),
			answers: map[string]intent.Intent{
				"i want to work out 3 times a week": {
					ActivityName: "work out", Frequency: intent.FrequencyWeeklyCount, Count: 3,
					Confidence: 0.9, Missing: []string{intent.MissingTime},
				},
				"i want to read every night at 9pm": {
					ActivityName: "read", Frequency: intent.FrequencyDaily,
					TimePreference: "9pm", Confidence: 0.9,
				},
				"maybe something": {ActivityName: "something", Confidence: 0.4},
			},
		},
		now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	voice, err := personality.New(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("personality.New: %v", err)
	}
	uc := New(log.NewNop(), Deps{
		Store:  store.New(h.repo, log.NewNop(), 10, 0),
		Parser: h.parser,
		Engine: schedule.New(),
		Voice:  voice,
		Users:  h.users,
		Tasks:  h.tasks,
		Quota:  h.quota,
	}).(*implUseCase)
	uc.now = func() time.Time { return h.now }
	ids := 0
	uc.newID = func() string {
		ids++
		return fmt.Sprintf("req-%d", ids)
	}
	h.uc = uc
	return h
}

func (h *harness) say(t *testing.T, text string) conversation.Reply {
	t.Helper()
	r, err := h.uc.HandleMessage(context.Background(), scope, text)
	if err != nil {
		t.Fatalf("HandleMessage(%q): %v", text, err)
	}
	return r
}

// --- tests ---

func TestHandleMessageFullFlow(t *testing.T) {
	h := newHarness(t)

	steps := []struct {
		text  string
		state conversation.State
		want  string
	}{
		{"hi", conversation.StateNameCollection, ""},
		{"Dana", conversation.StateGoalSetting, "Dana"},
		{"i want to work out 3 times a week", conversation.StateTimeCollection, ""},
		{"7am", conversation.StateConfirmation, "Monday at 07:00"},
		{"yes", conversation.StatePaymentPrompt, ""},
		{"nah", conversation.StateIdle, ""},
	}
	for _, s := range steps {
		r := h.say(t, s.text)
		if r.State != s.state {
			t.Fatalf("after %q: state = %s, want %s", s.text, r.State, s.state)
		}
		if s.want != "" && !strings.Contains(r.Text, s.want) {
			t.Errorf("after %q: reply %q does not contain %q", s.text, r.Text, s.want)
		}
	}

	if len(h.tasks.plans) != 1 {
		t.Fatalf("CreatePlanned calls = %d, want 1", len(h.tasks.plans))
	}
	plan := h.tasks.plans[0]
	if plan.Name != "work out" || len(plan.Tasks) != 3 || plan.ParentRequestID != "req-1" {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if plan.Method != model.GenerationNaturalLanguage {
		t.Errorf("method = %s", plan.Method)
	}
	for _, gt := range plan.Tasks {
		if gt.ReminderTime != model.Clock(7, 0) {
			t.Errorf("%s at %s, want 07:00", gt.DisplayName, gt.ReminderTime)
		}
	}
	if got := h.users.users[scope.UserID].Username; got != "Dana" {
		t.Errorf("stored name = %q", got)
	}
	if len(h.quota.recorded) != 1 || h.quota.recorded[0].Endpoint != quota.EndpointIntent {
		t.Errorf("recorded usage = %+v", h.quota.recorded)
	}

	stored := h.repo.rows[scope.UserID]
	if stored.State != conversation.StateIdle || stored.PendingTasks != nil || stored.Context.CreatedTaskID != 1 {
		t.Errorf("persisted conversation = %+v", stored)
	}
}

func TestConfirmationRetryAfterFailedSave(t *testing.T) {
	h := newHarness(t)
	for _, text := range []string{"hi", "Dana", "i want to read every night at 9pm"} {
		h.say(t, text)
	}

	h.repo.failSaves = 1
	if _, err := h.uc.HandleMessage(context.Background(), scope, "yes"); err == nil {
		t.Fatal("expected the failed save to surface")
	}
	if got := h.repo.rows[scope.UserID].State; got != conversation.StateConfirmation {
		t.Fatalf("persisted state = %s, want confirmation kept", got)
	}

	if r := h.say(t, "yes"); r.State != conversation.StatePaymentPrompt {
		t.Fatalf("retry state = %s", r.State)
	}
	if len(h.tasks.plans) != 2 {
		t.Fatalf("CreatePlanned calls = %d, want 2", len(h.tasks.plans))
	}
	if a, b := h.tasks.plans[0].ParentRequestID, h.tasks.plans[1].ParentRequestID; a == "" || a != b {
		t.Errorf("retry used request %q, first used %q", b, a)
	}
	if h.repo.rows[scope.UserID].Context.RequestID != "" {
		t.Error("request id kept after confirmation")
	}
}

func TestHandleMessageIntentWithTimeGoesToConfirmation(t *testing.T) {
	h := newHarness(t)
	h.say(t, "hi")
	h.say(t, "Dana")

	r := h.say(t, "i want to read every night at 9pm")
	if r.State != conversation.StateConfirmation {
		t.Fatalf("state = %s", r.State)
	}
	for _, want := range []string{"📚 Read Schedule:", "Every day at 21:00", "(yes/no)"} {
		if !strings.Contains(r.Text, want) {
			t.Errorf("preview %q missing %q", r.Text, want)
		}
	}
}

func TestHandleMessageReturningUserSkipsName(t *testing.T) {
	h := newHarness(t)
	h.users.users[scope.UserID] = model.User{ID: scope.UserID, Username: "Dana"}

	r := h.say(t, "hey")
	if r.State != conversation.StateGoalSetting {
		t.Fatalf("state = %s", r.State)
	}
	if !strings.Contains(r.Text, "Dana") {
		t.Errorf("greeting %q does not name the user", r.Text)
	}
}

func TestHandleMessageStaysOnBadInput(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		text  string
		state conversation.State
		want  string
	}{
		{"invalid name", []string{"hi"}, "!!", conversation.StateNameCollection, "not a name"},
		{"vague goal", []string{"hi", "Dana"}, "be happier", conversation.StateGoalSetting, "get specific"},
		{"low confidence", []string{"hi", "Dana", "i want to work out 3 times a week", "7am", "no"},
			"maybe something", conversation.StateTaskCreation, "not sure what you mean"},
		{"bad time", []string{"hi", "Dana", "i want to work out 3 times a week"}, "whenever",
			conversation.StateTimeCollection, "doesn't look like a time"},
		{"unclear confirmation", []string{"hi", "Dana", "i want to read every night at 9pm"}, "hmm",
			conversation.StateConfirmation, "yes or no"},
		{"unclear payment", []string{"hi", "Dana", "i want to read every night at 9pm", "yes"}, "what",
			conversation.StatePaymentPrompt, "$5/month"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			for _, s := range tc.setup {
				h.say(t, s)
			}
			r := h.say(t, tc.text)
			if r.State != tc.state {
				t.Fatalf("state = %s, want %s", r.State, tc.state)
			}
			if !strings.Contains(r.Text, tc.want) {
				t.Errorf("reply %q does not contain %q", r.Text, tc.want)
			}
		})
	}
}

func TestHandleMessageCorrectionKeepsTime(t *testing.T) {
	h := newHarness(t)
	for _, s := range []string{"hi", "Dana", "i want to work out 3 times a week", "7am", "no"} {
		h.say(t, s)
	}
	h.parser.answers["make it 4 times"] = intent.Intent{
		ActivityName: "work out", Frequency: intent.FrequencyWeeklyCount, Count: 4,
		Confidence: 0.9, Missing: []string{intent.MissingTime},
	}

	r := h.say(t, "make it 4 times")
	if r.State != conversation.StateConfirmation {
		t.Fatalf("state = %s, want confirmation", r.State)
	}
	if !strings.Contains(r.Text, "Thursday at 07:00") {
		t.Errorf("preview %q lost the earlier time", r.Text)
	}
}

func TestHandleMessageFailedTurnKeepsState(t *testing.T) {
	h := newHarness(t)
	for _, s := range []string{"hi", "Dana", "i want to read every night at 9pm"} {
		h.say(t, s)
	}
	h.tasks.createErr = errors.New("db down")

	if _, err := h.uc.HandleMessage(context.Background(), scope, "yes"); err == nil {
		t.Fatal("expected error")
	}
	stored := h.repo.rows[scope.UserID]
	if stored.State != conversation.StateConfirmation || len(stored.PendingTasks) == 0 {
		t.Errorf("failed turn changed the stored conversation: %+v", stored)
	}

	h.tasks.createErr = nil
	if r := h.say(t, "yes"); r.State != conversation.StatePaymentPrompt {
		t.Errorf("retry state = %s", r.State)
	}
}

func TestHandleMessageRestartsAfterExpiry(t *testing.T) {
	h := newHarness(t)
	h.users.users[scope.UserID] = model.User{ID: scope.UserID, Username: "Dana"}
	h.now = time.Now().Add(-48 * time.Hour)
	if r := h.say(t, "hi"); r.State != conversation.StateGoalSetting {
		t.Fatalf("state = %s", r.State)
	}

	// the goal would move a live conversation on; an expired one starts over
	h.now = time.Now()
	r := h.say(t, "i want to work out 3 times a week")
	if r.State != conversation.StateGoalSetting {
		t.Errorf("state = %s, want a fresh start", r.State)
	}
	if len(h.parser.calls) != 0 {
		t.Errorf("parser called %d times on a restarted conversation", len(h.parser.calls))
	}
}

func TestHandleMessageWithoutQuotaSkipsModel(t *testing.T) {
	h := newHarness(t)
	h.quota.allow = false
	for _, s := range []string{"hi", "Dana", "i want to work out 3 times a week"} {
		h.say(t, s)
	}
	last := h.parser.calls[len(h.parser.calls)-1]
	if last.UseModel {
		t.Error("model used without quota")
	}
	if len(h.quota.recorded) != 0 {
		t.Errorf("recorded %d calls", len(h.quota.recorded))
	}
}

func TestIdleReplies(t *testing.T) {
	h := newHarness(t)
	for _, s := range []string{"hi", "Dana", "i want to read every night at 9pm", "yes", "yes"} {
		h.say(t, s)
	}

	tests := []struct {
		text string
		want string
	}{
		{"help", "here's what i can help with"},
		{"show me my list", "/tasks"},
		{"lol", "not sure what you're asking"},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			r := h.say(t, tc.text)
			if r.State != conversation.StateIdle {
				t.Fatalf("state = %s", r.State)
			}
			if !strings.Contains(r.Text, tc.want) {
				t.Errorf("reply %q does not contain %q", r.Text, tc.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	for _, s := range []string{"hi", "Dana", "i want to work out 3 times a week"} {
		h.say(t, s)
	}

	r, err := h.uc.Reset(context.Background(), scope)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if r.State != conversation.StateGoalSetting {
		t.Errorf("state = %s, want goal_setting for a known user", r.State)
	}
	if h.repo.rows[scope.UserID].Context.Intent != nil {
		t.Error("reset kept the parsed intent")
	}
}

func TestSweep(t *testing.T) {
	h := newHarness(t)
	h.repo.rows[1] = conversation.Start(1, time.Now().Add(-72*time.Hour), time.Hour)
	h.repo.rows[2] = conversation.Start(2, time.Now(), time.Hour)

	n, err := h.uc.Sweep(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("Sweep = %d, %v", n, err)
	}
	if _, ok := h.repo.rows[2]; !ok {
		t.Error("live conversation swept")
	}
}

func TestOccurrenceLine(t *testing.T) {
	monday := model.Monday
	at := model.Clock(18, 30)
	tests := []struct {
		name string
		task schedule.GeneratedTask
		want string
	}{
		{"single day", schedule.GeneratedTask{ReminderTime: at, DaysOfWeek: model.NewWeekdaySet(model.Friday)}, "Friday at 18:30"},
		{"daily", schedule.GeneratedTask{ReminderTime: at, DaysOfWeek: model.AllWeekdays()}, "Every day at 18:30"},
		{"every other day", schedule.GeneratedTask{ReminderTime: at, IntervalDays: 2}, "Every other day at 18:30"},
		{"interval", schedule.GeneratedTask{ReminderTime: at, IntervalDays: 5}, "Every 5 days at 18:30"},
		{"bi-weekly", schedule.GeneratedTask{ReminderTime: at, IntervalDays: 14, AnchorWeekday: &monday}, "Every other Monday at 18:30"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := occurrenceLine(tc.task); got != tc.want {
				t.Errorf("occurrenceLine = %q, want %q", got, tc.want)
			}
		})
	}
}
