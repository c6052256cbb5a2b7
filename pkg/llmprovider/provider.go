package llmprovider

import (
	"context"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "ollama")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
	// JSONOutput asks the provider for a bare JSON object when it supports it.
	JSONOutput bool
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

// Part represents a message part (text or inline image)
type Part struct {
	Text  string
	Image *Image
}

// Image is an inline picture sent to vision-capable models.
type Image struct {
	MimeType string
	Data     []byte
}

// UserText builds a single-turn text request body.
func UserText(text string) []Message {
	return []Message{{Role: "user", Parts: []Part{{Text: text}}}}
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Text concatenates the text parts of the response.
func (r *Response) Text() string {
	var b strings.Builder
	for _, p := range r.Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Generator is the narrow view consumers depend on; *Manager satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
}
