package completion

import (
	"context"

	"habit-streak-bot/internal/model"
)

// UseCase records photo proof for a task and advances its streak.
type UseCase interface {
	Complete(ctx context.Context, sc model.Scope, input CompleteInput) (Outcome, error)
}

// Verifier judges whether an image shows a task being done.
// It never fails: model errors degrade to an unverified Verdict.
type Verifier interface {
	Verify(ctx context.Context, input VerifyInput) Verdict
}

// ImageSource downloads an uploaded file by id. *telegram.Bot satisfies it.
type ImageSource interface {
	FetchFile(ctx context.Context, fileID string, maxBytes int64) ([]byte, string, error)
}
