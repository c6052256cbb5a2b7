package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/validation"
	"habit-streak-bot/pkg/log"
)

func (uc *implUseCase) HandleMessage(ctx context.Context, sc model.Scope, text string) (conversation.Reply, error) {
	ctx = log.WithFields(ctx, "user_id", sc.UserID)
	unlock := uc.locks.Lock(sc.UserID)
	defer unlock()

	now := uc.now()
	conv, ok, err := uc.store.Load(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.HandleMessage: load: %v", err)
		return conversation.Reply{}, err
	}
	if !ok {
		conv = conversation.Start(sc.UserID, now, uc.ttl)
	}

	next := conv.Clone()
	text = strings.TrimSpace(text)
	reply, err := uc.step(ctx, sc, &next, text)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.HandleMessage: state=%s: %v", conv.State, err)
		return conversation.Reply{}, err
	}

	next.Touch(now, uc.ttl)
	if err := uc.store.Save(ctx, next); err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.HandleMessage: save: %v", err)
		return conversation.Reply{}, err
	}

	uc.l.Debugf(ctx, "conversation.usecase.HandleMessage: %s -> %s", conv.State, next.State)
	return conversation.Reply{Text: reply, State: next.State}, nil
}

func (uc *implUseCase) Reset(ctx context.Context, sc model.Scope) (conversation.Reply, error) {
	unlock := uc.locks.Lock(sc.UserID)
	defer unlock()

	now := uc.now()
	conv := conversation.Start(sc.UserID, now, uc.ttl)
	reply, err := uc.onboarding(ctx, sc, &conv)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Reset: %v", err)
		return conversation.Reply{}, err
	}
	if err := uc.store.Save(ctx, conv); err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Reset: save: %v", err)
		return conversation.Reply{}, err
	}
	return conversation.Reply{Text: reply, State: conv.State}, nil
}

func (uc *implUseCase) step(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	switch c.State {
	case conversation.StateOnboarding:
		return uc.onboarding(ctx, sc, c)
	case conversation.StateNameCollection:
		return uc.nameCollection(ctx, sc, c, text)
	case conversation.StateGoalSetting:
		return uc.goalSetting(ctx, sc, c, text)
	case conversation.StateTaskCreation:
		return uc.taskCreation(ctx, sc, c, text)
	case conversation.StateTimeCollection:
		return uc.timeCollection(c, text)
	case conversation.StateConfirmation:
		return uc.confirmation(ctx, sc, c, text)
	case conversation.StatePaymentPrompt:
		return uc.payment(c, text)
	case conversation.StateIdle:
		return uc.idle(ctx, sc, c, text)
	}
	return "", fmt.Errorf("%w: unknown state %q", conversation.ErrInvalidTransition, c.State)
}

func (uc *implUseCase) onboarding(ctx context.Context, sc model.Scope, c *conversation.Conversation) (string, error) {
	u, err := uc.users.Get(ctx, sc.UserID)
	if err != nil {
		return "", err
	}
	if u.ID != 0 && u.Username != "" {
		c.Context.Name = u.Username
		c.Context.ReturningUser = true
		if err := c.Transition(conversation.StateGoalSetting); err != nil {
			return "", err
		}
		return uc.voice.Greeting(false, u.Username), nil
	}
	if err := c.Transition(conversation.StateNameCollection); err != nil {
		return "", err
	}
	return uc.voice.Greeting(true, ""), nil
}

func (uc *implUseCase) nameCollection(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	if !validation.ValidDisplayName(text) {
		return msgBadName, nil
	}
	if _, err := uc.users.SetName(ctx, sc, text); err != nil {
		return "", err
	}
	c.Context.Name = text
	c.Context.NameIsBasic = personality.IsBasicName(text)
	if err := c.Transition(conversation.StateGoalSetting); err != nil {
		return "", err
	}
	return uc.voice.GoalSetting(text, c.Context.NameIsBasic), nil
}

func (uc *implUseCase) goalSetting(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	if !intent.LooksLikeTaskRequest(text) {
		c.Context.GeneralGoal = text
		return msgBeSpecific, nil
	}
	c.Context.InitialGoal = text
	if err := c.Transition(conversation.StateTaskCreation); err != nil {
		return "", err
	}
	return uc.taskCreation(ctx, sc, c, text)
}

func (uc *implUseCase) idle(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	if intent.LooksLikeTaskRequest(text) {
		if err := c.Transition(conversation.StateTaskCreation); err != nil {
			return "", err
		}
		return uc.taskCreation(ctx, sc, c, text)
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, helpWords):
		return uc.voice.Help(), nil
	case containsAny(lower, listWords):
		return msgTaskListHint, nil
	}
	return msgNotSure, nil
}

func (uc *implUseCase) taskCreation(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	out := uc.parse(ctx, sc, text)
	in := out.Intent

	// a correction after "no" keeps the time the user already gave
	if prev := c.Context.Intent; prev != nil && in.TimePreference == "" && prev.TimePreference != "" {
		in.TimePreference = prev.TimePreference
		in.Missing = without(in.Missing, intent.MissingTime)
	}
	if in.TimePreference == "" {
		c.Context.ParsedTime = nil
	}

	c.Context.Intent = &in
	c.Context.GoalType = personality.ClassifyGoal(in.ActivityName)

	if problems := uc.parser.Validate(in); len(problems) > 0 {
		return "hmm that won't work:\n• " + strings.Join(problems, "\n• ") + "\n\ntry again?", nil
	}
	if in.Confidence <= trustIntentAbove {
		return msgClarify, nil
	}
	if in.IsMissing(intent.MissingTime) {
		if err := c.Transition(conversation.StateTimeCollection); err != nil {
			return "", err
		}
		return uc.voice.TaskCreation(c.Context.GoalType), nil
	}
	return uc.preview(c)
}

// parse runs the intent parser, letting it call the model only while the
// user has quota left, and meters the call.
func (uc *implUseCase) parse(ctx context.Context, sc model.Scope, text string) intent.ParseOutput {
	allowed, err := uc.quota.Allow(ctx, sc)
	if err != nil {
		uc.l.Warnf(ctx, "conversation.usecase.parse: quota check: %v", err)
		allowed = false
	}

	out := uc.parser.Parse(ctx, intent.ParseInput{Text: text, UseModel: allowed})
	if out.ModelCalled {
		if err := uc.quota.Record(ctx, sc, quota.RecordInput{Endpoint: quota.EndpointIntent, Tokens: out.Tokens}); err != nil {
			uc.l.Warnf(ctx, "conversation.usecase.parse: record usage: %v", err)
		}
	}
	return out
}

func (uc *implUseCase) timeCollection(c *conversation.Conversation, text string) (string, error) {
	if c.Context.Intent == nil {
		return "", conversation.ErrMissingContext
	}
	at, ok := intent.ParseTimeExpression(text)
	if !ok {
		return msgBadTime, nil
	}
	c.Context.Intent.TimePreference = text
	c.Context.Intent.Missing = without(c.Context.Intent.Missing, intent.MissingTime)
	c.Context.ParsedTime = &at
	return uc.preview(c)
}

// preview generates the schedule, keeps it as pending and asks for a yes/no.
func (uc *implUseCase) preview(c *conversation.Conversation) (string, error) {
	in := *c.Context.Intent
	pat := uc.parser.Pattern(in)
	if c.Context.ParsedTime != nil {
		at := *c.Context.ParsedTime
		pat.TimeOfDay = &at
	}

	tasks := uc.engine.Generate(pat, in.ActivityName, "")
	c.PendingTasks = tasks
	c.Context.RequestID = uc.newID()
	if err := c.Transition(conversation.StateConfirmation); err != nil {
		return "", err
	}
	return renderPreview(in.ActivityName, tasks, uc.engine.Validate(tasks)), nil
}

func (uc *implUseCase) confirmation(ctx context.Context, sc model.Scope, c *conversation.Conversation, text string) (string, error) {
	switch conversation.ReadConfirmation(text) {
	case conversation.AnswerYes:
		return uc.createConfirmed(ctx, sc, c)
	case conversation.AnswerNo:
		if err := c.Transition(conversation.StateTaskCreation); err != nil {
			return "", err
		}
		return msgAdjust, nil
	}
	return msgYesOrNo, nil
}

func (uc *implUseCase) createConfirmed(ctx context.Context, sc model.Scope, c *conversation.Conversation) (string, error) {
	if len(c.PendingTasks) == 0 {
		if err := c.Transition(conversation.StateTaskCreation); err != nil {
			return "", err
		}
		return msgNothingPending, nil
	}

	if c.Context.RequestID == "" {
		c.Context.RequestID = uc.newID()
	}
	created, err := uc.tasks.CreatePlanned(ctx, sc, task.PlanInput{
		Name:            c.Context.Intent.ActivityName,
		Tasks:           c.PendingTasks,
		Method:          model.GenerationNaturalLanguage,
		ParentRequestID: c.Context.RequestID,
	})
	if err != nil {
		return "", err
	}

	c.Context.CreatedTaskID = created.ID
	c.Context.RequestID = ""
	c.PendingTasks = nil
	if err := c.Transition(conversation.StatePaymentPrompt); err != nil {
		return "", err
	}
	uc.l.Infof(ctx, "conversation.usecase.createConfirmed: task=%d %q", created.ID, created.Name)
	return uc.voice.PaymentPrompt(c.Context.Name), nil
}

func (uc *implUseCase) payment(c *conversation.Conversation, text string) (string, error) {
	answer := conversation.ReadPayment(text)
	if answer == conversation.AnswerUnclear {
		return msgPaymentUnclear, nil
	}
	if err := c.Transition(conversation.StateIdle); err != nil {
		return "", err
	}
	return uc.voice.PaymentReply(answer == conversation.AnswerYes), nil
}

func (uc *implUseCase) Sweep(ctx context.Context) (int64, error) {
	n, err := uc.store.Sweep(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Sweep: %v", err)
		return 0, err
	}
	if n > 0 {
		uc.l.Infof(ctx, "conversation.usecase.Sweep: removed %d expired conversations", n)
	}
	return n, nil
}

func (uc *implUseCase) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = uc.Sweep(ctx)
			}
		}
	}()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func without(list []string, drop string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
