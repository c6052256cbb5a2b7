// Package personality renders the bot's chat voice from an embedded phrase table.
package personality

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed phrases.yaml
var phrasesYAML []byte

// LongStreak is the streak length that switches to the celebratory variants.
const LongStreak = 7

// Voice picks phrases. Every random choice goes through the injected source,
// so a seeded source gives repeatable output.
type Voice struct {
	mu  sync.Mutex
	rng *rand.Rand
	p   phrases
}

// New parses the embedded table. A nil rng is replaced by a time-seeded one.
func New(rng *rand.Rand) (*Voice, error) {
	var p phrases
	if err := yaml.Unmarshal(phrasesYAML, &p); err != nil {
		return nil, fmt.Errorf("personality: parse phrases: %w", err)
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Voice{rng: rng, p: p}, nil
}

// MustNew is New for process start-up.
func MustNew(rng *rand.Rand) *Voice {
	v, err := New(rng)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Voice) horse() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rng.Float64() < v.p.HorseChance
}

func (v *Voice) pick(options []string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return options[v.rng.Intn(len(options))]
}

func (v *Voice) either(horse bool, normal, alt string) string {
	if horse && alt != "" {
		return alt
	}
	return normal
}

// Vars fills the placeholders of a phrase.
type Vars struct {
	Name   string
	Task   string
	Streak int
	Days   int
}

func (x Vars) render(s string) string {
	return strings.NewReplacer(
		"{name}", x.Name,
		"{task}", x.Task,
		"{streak}", strconv.Itoa(x.Streak),
		"{next}", strconv.Itoa(x.Streak+1),
		"{days}", strconv.Itoa(x.Days),
	).Replace(s)
}

// Greeting is the onboarding opener, or the welcome back for a known user.
func (v *Voice) Greeting(firstTime bool, name string) string {
	if firstTime {
		return v.p.Greeting.First
	}
	if name == "" {
		name = "mystery person"
	}
	return Vars{Name: name}.render(v.p.Greeting.Returning)
}

// GoalSetting reacts to the user's name and asks for goals.
func (v *Voice) GoalSetting(name string, basic bool) string {
	head := v.p.GoalSetting.Name
	if basic {
		head = v.p.GoalSetting.BasicName
		name = strings.ToLower(name)
	}
	return Vars{Name: name}.render(head) + "\n\n" + v.p.GoalSetting.Body
}

// TaskCreation asks for frequency and time, flavoured by goal type.
func (v *Voice) TaskCreation(g GoalType) string {
	if s, ok := v.p.TaskCreation[string(g)]; ok {
		return s
	}
	return v.p.TaskCreation[string(GoalGeneral)]
}

// PaymentPrompt follows a confirmed schedule.
func (v *Voice) PaymentPrompt(name string) string {
	if name == "" {
		name = "friend"
	}
	var b strings.Builder
	b.WriteString(Vars{Name: name}.render(v.p.Payment.Head))
	if v.horse() {
		b.WriteString("\n" + v.p.Payment.HorseLine)
	}
	b.WriteString("\n\n" + v.p.Payment.Body)
	return b.String()
}

// PaymentReply answers the payment prompt.
func (v *Voice) PaymentReply(accepted bool) string {
	if accepted {
		return v.p.Payment.Accepted
	}
	return v.p.Payment.Declined
}

// Celebration congratulates a verified completion. streak is the value after it.
func (v *Voice) Celebration(task string, streak int) string {
	x := Vars{Task: task, Streak: streak}
	if streak >= LongStreak {
		return x.render(v.either(v.horse(), v.p.Celebration.Long, v.p.Celebration.LongHorse))
	}
	x.Streak = streak - 1
	return x.render(v.p.Celebration.Short)
}

// NewRecord announces a personal best.
func (v *Voice) NewRecord(streak int) string {
	return Vars{Streak: streak}.render(v.p.Celebration.Record)
}

// Reminder is the body of a scheduled reminder. streak is the current value.
func (v *Voice) Reminder(name, task string, streak int) string {
	if name == "" {
		name = "friend"
	}
	x := Vars{Name: name, Task: task, Streak: streak}
	switch {
	case streak == 0:
		return x.render(v.either(v.horse(), v.p.Reminder.First, v.p.Reminder.FirstHorse))
	case streak < LongStreak:
		return x.render(v.p.Reminder.Running)
	default:
		return v.Celebration(task, streak)
	}
}

// ReminderFooter closes a reminder message.
func (v *Voice) ReminderFooter(streak int) string {
	switch {
	case streak >= LongStreak:
		return v.p.Reminder.FooterLong
	case streak > 0:
		return v.p.Reminder.FooterRunning
	default:
		return v.p.Reminder.FooterFirst
	}
}

// Missed nudges a user who skipped days.
func (v *Voice) Missed(name, task string, days int) string {
	if name == "" {
		name = "friend"
	}
	x := Vars{Name: name, Task: task, Days: days}
	switch {
	case days <= 1:
		return v.p.Missed.One
	case days <= 3:
		return x.render(v.either(v.horse(), v.p.Missed.Few, v.p.Missed.FewHorse))
	default:
		return x.render(v.p.Missed.Many)
	}
}

// highConfidence separates enthusiastic from lukewarm acceptance.
const highConfidence = 80

// CompletionResponse reacts to a verification verdict.
func (v *Voice) CompletionResponse(verified bool, confidence int) string {
	switch {
	case !verified:
		return v.pick(v.p.Completion.Rejected)
	case confidence >= highConfidence:
		if v.horse() {
			return v.pick(v.p.Completion.VerifiedHighHorse)
		}
		return v.pick(v.p.Completion.VerifiedHigh)
	default:
		return v.p.Completion.VerifiedLow
	}
}

// Motivation is a one-line push.
func (v *Voice) Motivation() string {
	if v.horse() {
		return v.pick(v.p.MotivationHorse)
	}
	return v.pick(v.p.Motivation)
}

// RealityCheck answers excuses.
func (v *Voice) RealityCheck() string {
	return v.pick(v.p.RealityCheck)
}

func (v *Voice) Help() string {
	return v.p.Help
}

// ErrorKind selects an error phrase.
type ErrorKind string

const (
	ErrorParsing  ErrorKind = "parsing_failed"
	ErrorAIDown   ErrorKind = "ai_service_down"
	ErrorDatabase ErrorKind = "database_error"
	ErrorGeneral  ErrorKind = "general"
)

func (v *Voice) Error(kind ErrorKind) string {
	if s, ok := v.p.Errors[string(kind)]; ok {
		return s
	}
	return v.p.Errors[string(ErrorGeneral)]
}
