package personality

import (
	"math/rand"
	"strings"
	"testing"
)

func newVoice(t *testing.T, seed int64) *Voice {
	t.Helper()
	v, err := New(rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestEmbeddedTableLoads(t *testing.T) {
	v := newVoice(t, 1)
	if v.p.HorseChance != 0.15 {
		t.Errorf("horse chance = %v", v.p.HorseChance)
	}
	for _, g := range []GoalType{GoalFitness, GoalReading, GoalMindfulness, GoalWriting, GoalGeneral} {
		if v.TaskCreation(g) == "" {
			t.Errorf("no task creation text for %s", g)
		}
	}
}

func TestSeededOutputRepeats(t *testing.T) {
	a, b := newVoice(t, 42), newVoice(t, 42)
	for i := 0; i < 20; i++ {
		if x, y := a.Motivation(), b.Motivation(); x != y {
			t.Fatalf("draw %d differs: %q vs %q", i, x, y)
		}
	}
}

func TestReminderVariants(t *testing.T) {
	v := newVoice(t, 7)

	first := v.Reminder("Sam", "workout", 0)
	if !strings.Contains(first, "Sam") && !strings.Contains(first, "horsepower") {
		t.Errorf("first reminder = %q", first)
	}

	running := v.Reminder("Sam", "workout", 3)
	if !strings.Contains(running, "day 4 of workout") {
		t.Errorf("running reminder = %q", running)
	}

	long := v.Reminder("Sam", "workout", 9)
	if !strings.Contains(long, "9 DAY STREAK") {
		t.Errorf("long reminder = %q", long)
	}
}

func TestReminderFooter(t *testing.T) {
	v := newVoice(t, 1)
	tests := []struct {
		streak int
		want   string
	}{
		{0, "start building"},
		{3, "momentum"},
		{7, "on fire"},
	}
	for _, tt := range tests {
		if got := v.ReminderFooter(tt.streak); !strings.Contains(got, tt.want) {
			t.Errorf("ReminderFooter(%d) = %q, want %q", tt.streak, got, tt.want)
		}
	}
}

func TestCelebration(t *testing.T) {
	v := newVoice(t, 3)
	if got := v.Celebration("reading", 4); !strings.Contains(got, "reading completed") || !strings.Contains(got, "day 4 in the books") {
		t.Errorf("short celebration = %q", got)
	}
	if got := v.Celebration("reading", 12); !strings.Contains(got, "12 DAY STREAK") {
		t.Errorf("long celebration = %q", got)
	}
	if got := v.NewRecord(5); !strings.Contains(got, "5 days") {
		t.Errorf("NewRecord = %q", got)
	}
}

func TestMissed(t *testing.T) {
	v := newVoice(t, 5)
	if got := v.Missed("Ana", "run", 1); !strings.Contains(got, "yesterday") {
		t.Errorf("one day = %q", got)
	}
	if got := v.Missed("Ana", "run", 3); !strings.Contains(got, "3 days without run") {
		t.Errorf("few days = %q", got)
	}
	if got := v.Missed("Ana", "run", 9); !strings.Contains(got, "9 days is rough") {
		t.Errorf("many days = %q", got)
	}
}

func TestCompletionResponse(t *testing.T) {
	v := newVoice(t, 11)
	in := func(s string, list []string) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	}

	for i := 0; i < 30; i++ {
		if got := v.CompletionResponse(false, 95); !in(got, v.p.Completion.Rejected) {
			t.Fatalf("rejected response %q not from table", got)
		}
		got := v.CompletionResponse(true, 90)
		if !in(got, v.p.Completion.VerifiedHigh) && !in(got, v.p.Completion.VerifiedHighHorse) {
			t.Fatalf("high response %q not from table", got)
		}
	}
	if got := v.CompletionResponse(true, 60); got != v.p.Completion.VerifiedLow {
		t.Errorf("low confidence = %q", got)
	}
}

func TestGoalSettingTeasesBasicNames(t *testing.T) {
	v := newVoice(t, 1)
	if got := v.GoalSetting("John", true); !strings.HasPrefix(got, "john... hmm") {
		t.Errorf("basic = %q", got)
	}
	if got := v.GoalSetting("Ximena", false); !strings.HasPrefix(got, "ok Ximena i see you") {
		t.Errorf("normal = %q", got)
	}
}

func TestPaymentPrompt(t *testing.T) {
	v := newVoice(t, 1)
	got := v.PaymentPrompt("Ana")
	if !strings.Contains(got, "alright Ana") || !strings.Contains(got, "$5/month") {
		t.Errorf("PaymentPrompt = %q", got)
	}
}

func TestErrorFallsBackToGeneral(t *testing.T) {
	v := newVoice(t, 1)
	if v.Error("nope") != v.Error(ErrorGeneral) {
		t.Error("unknown kind should use the general phrase")
	}
	if !strings.Contains(v.Error(ErrorParsing), "couldn't figure out") {
		t.Errorf("parsing = %q", v.Error(ErrorParsing))
	}
}

func TestClassifyGoal(t *testing.T) {
	tests := []struct {
		text string
		want GoalType
	}{
		{"go to the gym", GoalFitness},
		{"Workout", GoalFitness},
		{"read a book", GoalReading},
		{"meditate", GoalMindfulness},
		{"journal before bed", GoalWriting},
		{"drink water", GoalGeneral},
	}
	for _, tt := range tests {
		if got := ClassifyGoal(tt.text); got != tt.want {
			t.Errorf("ClassifyGoal(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestEmojiAndBasicName(t *testing.T) {
	if Emoji("morning run") != "🏃" {
		t.Errorf("run emoji = %q", Emoji("morning run"))
	}
	if Emoji("drink water") != "🎯" {
		t.Errorf("default emoji = %q", Emoji("drink water"))
	}
	if !IsBasicName(" Mike ") || IsBasicName("Ximena") {
		t.Error("IsBasicName mismatch")
	}
}
