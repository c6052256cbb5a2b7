package completion

import (
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak"
)

// Upload is an image attached to /complete, before it is downloaded.
type Upload struct {
	FileID   string
	FileName string
	MimeType string
	Size     int64
}

// CompleteInput is the input of Complete.
type CompleteInput struct {
	TaskID int64
	Upload Upload
}

// VerifyInput is what the classifier sees.
type VerifyInput struct {
	TaskName    string
	Description string
	MimeType    string
	Image       []byte
}

// Verdict is the classifier's answer.
type Verdict struct {
	Verified    bool
	Confidence  int
	Explanation string
	// Response is an encouraging line written by the model, may be empty.
	Response string
	// ModelCalled is false when the model could not be reached.
	ModelCalled bool
	Tokens      int
}

// Outcome reports a finished /complete.
type Outcome struct {
	Task       model.Task
	Completion model.Completion
	Verdict    Verdict
	// Streak is zero-valued unless the completion was verified.
	Streak streak.Result
	// Duplicate is set when the date was already completed; Completion is
	// then the earlier row and nothing was written.
	Duplicate bool
}
