package llmprovider

import (
	"testing"

	"habit-streak-bot/pkg/openai"
)

func TestConvertToOpenAIMessages(t *testing.T) {
	msgs := convertToOpenAIMessages([]Message{
		{Role: "user", Parts: []Part{{Text: "plain "}, {Text: "text"}}},
		{Role: "user", Parts: []Part{
			{Text: "look"},
			{Image: &Image{MimeType: "image/png", Data: []byte("abc")}},
		}},
	})

	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if s, ok := msgs[0].Content.(string); !ok || s != "plain text" {
		t.Errorf("text message content = %#v", msgs[0].Content)
	}
	parts, ok := msgs[1].Content.([]openai.ContentPart)
	if !ok || len(parts) != 2 {
		t.Fatalf("image message content = %#v", msgs[1].Content)
	}
	if parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/png;base64,YWJj" {
		t.Errorf("image part = %+v", parts[1])
	}
}
