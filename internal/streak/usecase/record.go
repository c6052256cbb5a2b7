package usecase

import (
	"context"
	"errors"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/streak/repository"
)

func (uc *implUseCase) RecordCompletion(ctx context.Context, sc model.Scope, input streak.RecordInput) (streak.Result, error) {
	if input.CompletionDate.IsZero() {
		return streak.Result{}, streak.ErrInvalidDate
	}

	unlock := uc.locks.Lock(streak.Key{UserID: sc.UserID, TaskID: input.TaskID})
	defer unlock()

	current, err := uc.repo.GetStreak(ctx, sc.UserID, input.TaskID)
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.RecordCompletion: get user=%d task=%d: %v", sc.UserID, input.TaskID, err)
		return streak.Result{}, err
	}
	if current.ID == 0 {
		current = model.Streak{UserID: sc.UserID, TaskID: input.TaskID}
	}

	next, changed := streak.Advance(current, input.CompletionDate)
	if changed {
		if next, err = uc.repo.SaveStreak(ctx, next); err != nil {
			uc.l.Errorf(ctx, "streak.usecase.RecordCompletion: save user=%d task=%d: %v", sc.UserID, input.TaskID, err)
			return streak.Result{}, err
		}
	}

	res := streak.Result{
		CurrentStreak: next.CurrentStreak,
		LongestStreak: next.LongestStreak,
		IsNewRecord:   streak.IsNewRecord(next),
		Changed:       changed,
	}
	if next.LastCompletionDate != nil {
		res.LastCompletion = *next.LastCompletionDate
	}
	return res, nil
}

func (uc *implUseCase) SaveCompletion(ctx context.Context, sc model.Scope, input streak.SaveCompletionInput) (model.Completion, error) {
	if input.CompletionDate.IsZero() {
		return model.Completion{}, streak.ErrInvalidDate
	}
	c, err := uc.repo.CreateCompletion(ctx, model.Completion{
		UserID:         sc.UserID,
		TaskID:         input.TaskID,
		CompletionDate: input.CompletionDate,
		ImageReference: input.ImageReference,
		Explanation:    input.Explanation,
		Verified:       input.Verified,
		Confidence:     input.Confidence,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return model.Completion{}, streak.ErrAlreadyCompleted
	}
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.SaveCompletion: user=%d task=%d: %v", sc.UserID, input.TaskID, err)
		return model.Completion{}, err
	}
	return c, nil
}

func (uc *implUseCase) CompletionOn(ctx context.Context, sc model.Scope, input streak.RecordInput) (model.Completion, error) {
	c, err := uc.repo.GetCompletion(ctx, sc.UserID, input.TaskID, input.CompletionDate)
	if err != nil {
		uc.l.Errorf(ctx, "streak.usecase.CompletionOn: %v", err)
		return model.Completion{}, err
	}
	return c, nil
}
