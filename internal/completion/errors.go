package completion

import "errors"

var (
	ErrTaskInactive = errors.New("task is inactive")
	ErrNoImage      = errors.New("no image attached")
	ErrDownload     = errors.New("failed to download image")
)
