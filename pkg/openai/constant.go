package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the default model to use
	DefaultModel = "deepseek-chat"

	// QwenBaseURL is DashScope's OpenAI-compatible endpoint
	QwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
