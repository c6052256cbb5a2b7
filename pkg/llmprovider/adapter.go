package llmprovider

import (
	"context"
	"encoding/base64"
	"fmt"

	"habit-streak-bot/pkg/gemini"
	"habit-streak-bot/pkg/ollama"
	"habit-streak-bot/pkg/openai"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONOutput:        req.JSONOutput,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	parts := make([]Part, len(resp.Content.Parts))
	for i, p := range resp.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}

	return &Response{
		Content:      Message{Role: "assistant", Parts: parts},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.Image != nil {
			parts[i].Image = &gemini.Blob{MimeType: p.Image.MimeType, Data: p.Image.Data}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface
type OpenAIAdapter struct {
	name   string
	client openai.IClient
}

// NewOpenAIAdapter creates an adapter reporting the given provider name
func NewOpenAIAdapter(name string, client openai.IClient) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	oaReq := &openai.Request{
		Messages:    convertToOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		systemMsg := openai.Message{Role: "system", Content: req.SystemInstruction.Parts[0].Text}
		oaReq.Messages = append([]openai.Message{systemMsg}, oaReq.Messages...)
	}

	if req.JSONOutput {
		oaReq.ResponseFormat = &openai.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, oaReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}

	return convertFromOpenAIResponse(a.name, resp), nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

func convertToOpenAIMessages(msgs []Message) []openai.Message {
	messages := make([]openai.Message, 0, len(msgs))
	for _, msg := range msgs {
		hasImage := false
		for _, p := range msg.Parts {
			if p.Image != nil {
				hasImage = true
			}
		}

		if !hasImage {
			var text string
			for _, p := range msg.Parts {
				text += p.Text
			}
			messages = append(messages, openai.Message{Role: msg.Role, Content: text})
			continue
		}

		parts := make([]openai.ContentPart, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			if p.Image != nil {
				url := fmt.Sprintf("data:%s;base64,%s", p.Image.MimeType, base64.StdEncoding.EncodeToString(p.Image.Data))
				parts = append(parts, openai.ContentPart{Type: "image_url", ImageURL: &openai.ImageURL{URL: url}})
				continue
			}
			parts = append(parts, openai.ContentPart{Type: "text", Text: p.Text})
		}
		messages = append(messages, openai.Message{Role: msg.Role, Content: parts})
	}
	return messages
}

func convertFromOpenAIResponse(name string, resp *openai.Response) *Response {
	parts := []Part{}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		parts = append(parts, Part{Text: resp.Choices[0].Message.Content})
	}

	return &Response{
		Content:      Message{Role: "assistant", Parts: parts},
		ProviderName: name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
}

// OllamaAdapter adapts pkg/ollama to llmprovider.Provider interface
type OllamaAdapter struct {
	client *ollama.Client
}

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(client *ollama.Client) *OllamaAdapter {
	return &OllamaAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	olReq := &ollama.Request{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONOutput:  req.JSONOutput,
	}
	if req.SystemInstruction != nil {
		for _, p := range req.SystemInstruction.Parts {
			olReq.System += p.Text
		}
	}
	for _, msg := range req.Messages {
		m := ollama.Message{Role: msg.Role}
		for _, p := range msg.Parts {
			if p.Image != nil {
				m.Images = append(m.Images, p.Image.Data)
				continue
			}
			m.Content += p.Text
		}
		olReq.Messages = append(olReq.Messages, m)
	}

	resp, err := a.client.Chat(ctx, olReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: resp.Content}}},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.InputTokens + resp.OutputTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Model returns the model name
func (a *OllamaAdapter) Model() string {
	return a.client.Model()
}
