package usecase

import (
	"context"
	"errors"
	"time"

	"habit-streak-bot/internal/completion"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/validation"
	"habit-streak-bot/pkg/datemath"
	"habit-streak-bot/pkg/telegram"
)

func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, input completion.CompleteInput) (completion.Outcome, error) {
	up := input.Upload
	if up.FileID == "" {
		return completion.Outcome{}, completion.ErrNoImage
	}
	if err := validation.CheckImage(validation.Image{
		FileName: up.FileName,
		MimeType: up.MimeType,
		Size:     up.Size,
	}, uc.maxSizeMB); err != nil {
		return completion.Outcome{}, err
	}

	t, err := uc.tasks.Get(ctx, sc, input.TaskID)
	if err != nil {
		return completion.Outcome{}, err
	}
	if !t.IsActive {
		return completion.Outcome{}, completion.ErrTaskInactive
	}

	date := uc.today(sc, t)
	key := streak.RecordInput{TaskID: t.ID, CompletionDate: date}
	if prev, err := uc.streaks.CompletionOn(ctx, sc, key); err != nil {
		return completion.Outcome{}, err
	} else if prev.ID != 0 {
		return completion.Outcome{Task: t, Completion: prev, Duplicate: true}, nil
	}

	ok, err := uc.quota.Allow(ctx, sc)
	if err != nil {
		return completion.Outcome{}, err
	}
	if !ok {
		return completion.Outcome{}, quota.ErrQuotaExceeded
	}

	data, mime, err := uc.images.FetchFile(ctx, up.FileID, int64(uc.maxSizeMB)*1024*1024)
	if errors.Is(err, telegram.ErrFileTooLarge) {
		return completion.Outcome{}, validation.ErrImageTooLarge
	}
	if err != nil {
		uc.l.Errorf(ctx, "completion.usecase.Complete FetchFile: user=%d task=%d: %v", sc.UserID, t.ID, err)
		return completion.Outcome{}, completion.ErrDownload
	}
	if err := validation.CheckImage(validation.Image{MimeType: mime, Size: int64(len(data))}, uc.maxSizeMB); err != nil {
		return completion.Outcome{}, err
	}

	verdict := uc.verifier.Verify(ctx, completion.VerifyInput{
		TaskName:    t.Name,
		Description: t.Description,
		MimeType:    mime,
		Image:       data,
	})
	if verdict.ModelCalled {
		if err := uc.quota.Record(ctx, sc, quota.RecordInput{Endpoint: quota.EndpointVerification, Tokens: verdict.Tokens}); err != nil {
			uc.l.Warnf(ctx, "completion.usecase.Complete Record: user=%d: %v", sc.UserID, err)
		}
	}

	c, err := uc.streaks.SaveCompletion(ctx, sc, streak.SaveCompletionInput{
		TaskID:         t.ID,
		CompletionDate: date,
		ImageReference: up.FileID,
		Explanation:    verdict.Explanation,
		Verified:       verdict.Verified,
		Confidence:     verdict.Confidence,
	})
	if errors.Is(err, streak.ErrAlreadyCompleted) {
		prev, gerr := uc.streaks.CompletionOn(ctx, sc, key)
		if gerr != nil {
			return completion.Outcome{}, gerr
		}
		return completion.Outcome{Task: t, Completion: prev, Duplicate: true}, nil
	}
	if err != nil {
		return completion.Outcome{}, err
	}

	out := completion.Outcome{Task: t, Completion: c, Verdict: verdict}
	if !verdict.Verified {
		return out, nil
	}
	if out.Streak, err = uc.streaks.RecordCompletion(ctx, sc, key); err != nil {
		uc.l.Errorf(ctx, "completion.usecase.Complete RecordCompletion: user=%d task=%d: %v", sc.UserID, t.ID, err)
		return completion.Outcome{}, err
	}
	return out, nil
}

// today is the calendar date in the user's zone, falling back to the task's.
func (uc *implUseCase) today(sc model.Scope, t model.Task) time.Time {
	tz := sc.Timezone
	if tz == "" {
		tz = t.Timezone
	}
	loc, err := datemath.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return datemath.DateOf(uc.now(), loc)
}
