package openai

import "context"

// IClient defines the interface for an OpenAI-compatible chat completions client
type IClient interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
