package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// DefaultBaseURL is the local Ollama daemon.
const DefaultBaseURL = "http://localhost:11434"

// Config configures a client for a local or remote Ollama daemon.
type Config struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Request is a single non-streaming chat call.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONOutput  bool
}

// Message is one chat turn; Images carry raw bytes.
type Message struct {
	Role    string
	Content string
	Images  [][]byte
}

// Response is the final chat message with token counts.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Client talks to Ollama through its official api package.
type Client struct {
	api   *api.Client
	model string
}

// New builds a client. An empty BaseURL honours OLLAMA_HOST.
func New(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}

	var c *api.Client
	if cfg.BaseURL == "" {
		var err error
		c, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
	} else {
		u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("ollama: invalid base url: %w", err)
		}
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		c = api.NewClient(u, httpClient)
	}

	return &Client{api: c, model: cfg.Model}, nil
}

// Model returns the configured model
func (c *Client) Model() string {
	return c.model
}

// Chat sends the conversation and waits for the final message.
func (c *Client) Chat(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]api.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, api.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		am := api.Message{Role: m.Role, Content: m.Content}
		for _, img := range m.Images {
			am.Images = append(am.Images, api.ImageData(img))
		}
		msgs = append(msgs, am)
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{},
	}
	if req.JSONOutput {
		chatReq.Format = json.RawMessage(`"json"`)
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}

	var out Response
	var content strings.Builder
	err := c.api.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		if r.Done {
			out.InputTokens = r.PromptEvalCount
			out.OutputTokens = r.EvalCount
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: chat: %w", err)
	}
	out.Content = content.String()
	return &out, nil
}
