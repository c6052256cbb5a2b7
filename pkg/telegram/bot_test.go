package telegram_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"habit-streak-bot/pkg/telegram"
)

func TestBot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasSuffix(path, "/setWebhook") {
			var req telegram.SetWebhookRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.URL == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "invalid url"}`))
				return
			}
			if req.URL == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if req.SecretToken != "s3cret" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "missing secret"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "result": true}`))
			return
		}

		if strings.HasSuffix(path, "/sendMessage") {
			var req telegram.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)

			switch {
			case req.ChatID == 403:
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"ok": false, "error_code": 403, "description": "Forbidden: bot was blocked by the user"}`))
			case req.ChatID == 404:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`))
			case req.Text == "cause_error":
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "invalid text"}`))
			case req.Text == "cause_500":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				w.Write([]byte(`{"ok": true, "result": {"message_id": 1}}`))
			}
			return
		}

		if strings.HasSuffix(path, "/getFile") {
			w.Write([]byte(`{"ok": true, "result": {"file_id": "abc", "file_size": 4, "file_path": "photos/abc.jpg"}}`))
			return
		}

		if strings.HasPrefix(path, "/file/photos/") {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("\xff\xd8\xff\xe0"))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	ctx := context.Background()
	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)
	bot.SetFileURL(ts.URL + "/file")

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error", "s3cret")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SetWebhook HTTP Failed", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "cause_500", "s3cret"); err == nil {
			t.Fatalf("expected http decoding error")
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessageWithMode Success", func(t *testing.T) {
		if err := bot.SendMessageWithMode(ctx, 12345, "Hello", "Markdown"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(ctx, 12345, "cause_error")
		var apiErr *telegram.APIError
		if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendDirectMessage statuses", func(t *testing.T) {
		tests := []struct {
			chatID int64
			want   telegram.DeliveryStatus
		}{
			{12345, telegram.Delivered},
			{403, telegram.Forbidden},
			{404, telegram.NotFound},
		}
		for _, tt := range tests {
			got, err := bot.SendDirectMessage(ctx, tt.chatID, "hi")
			if err != nil {
				t.Fatalf("chat %d: unexpected error: %v", tt.chatID, err)
			}
			if got != tt.want {
				t.Errorf("chat %d: got %q, want %q", tt.chatID, got, tt.want)
			}
		}
	})

	t.Run("SendDirectMessage other failure", func(t *testing.T) {
		if _, err := bot.SendDirectMessage(ctx, 1, "cause_500"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("GetFile and Download", func(t *testing.T) {
		f, err := bot.GetFile(ctx, "abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, ct, err := bot.DownloadFile(ctx, f.FilePath, 1024)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ct != "image/jpeg" || len(data) != 4 {
			t.Errorf("got %s/%d bytes", ct, len(data))
		}
		if _, _, err := bot.DownloadFile(ctx, f.FilePath, 2); !errors.Is(err, telegram.ErrFileTooLarge) {
			t.Errorf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("FetchFile", func(t *testing.T) {
		data, ct, err := bot.FetchFile(ctx, "abc", 1024)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ct != "image/jpeg" || len(data) != 4 {
			t.Errorf("got %s/%d bytes", ct, len(data))
		}
	})

	t.Run("Invalid API URL logic", func(t *testing.T) {
		badBot := telegram.NewBot("test")
		badBot.SetAPIURL("http://invalid-url.local:1234")
		if err := badBot.SendMessage(ctx, 12345, "fail"); err == nil {
			t.Errorf("expected network failure on invalid domain")
		}
	})
}

func TestMessageHelpers(t *testing.T) {
	m := &telegram.Message{
		Caption: "/complete 3",
		Photo: []telegram.PhotoSize{
			{FileID: "small", Width: 90, Height: 90},
			{FileID: "big", Width: 1280, Height: 720},
			{FileID: "mid", Width: 320, Height: 320},
		},
	}
	if m.Command() != "/complete 3" {
		t.Errorf("Command() = %q", m.Command())
	}
	if p := m.LargestPhoto(); p == nil || p.FileID != "big" {
		t.Errorf("LargestPhoto() = %+v", p)
	}
	u := &telegram.User{FirstName: "Sam"}
	if u.DisplayName() != "Sam" {
		t.Errorf("DisplayName() = %q", u.DisplayName())
	}
}
