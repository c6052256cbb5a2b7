package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SecretTokenHeader carries the webhook secret on every update Telegram delivers.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// ErrFileTooLarge is returned when a download exceeds the caller's limit.
var ErrFileTooLarge = errors.New("telegram: file too large")

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	fileURL    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL:    fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetFileURL overrides the file download base URL for testing purposes.
func (b *Bot) SetFileURL(url string) {
	b.fileURL = url
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is echoed
// back by Telegram in SecretTokenHeader on every update.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	_, err := b.call(ctx, "setWebhook", SetWebhookRequest{
		URL:            webhookURL,
		SecretToken:    secret,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error {
	_, err := b.call(ctx, "sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// SendDirectMessage delivers text to a user's private chat and classifies refusals.
// Forbidden and NotFound are reported through the status with a nil error.
func (b *Bot) SendDirectMessage(ctx context.Context, userID int64, text string) (DeliveryStatus, error) {
	_, err := b.call(ctx, "sendMessage", SendMessageRequest{ChatID: userID, Text: text})
	if err == nil {
		return Delivered, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusForbidden:
			return Forbidden, nil
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Description), "chat not found"):
			return NotFound, nil
		}
	}
	return "", fmt.Errorf("telegram sendMessage: %w", err)
}

// GetFile resolves a file id to a downloadable path.
func (b *Bot) GetFile(ctx context.Context, fileID string) (*File, error) {
	raw, err := b.call(ctx, "getFile", map[string]string{"file_id": fileID})
	if err != nil {
		return nil, fmt.Errorf("telegram getFile: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	return &f, nil
}

// DownloadFile fetches a file previously resolved with GetFile. It refuses to read more
// than maxBytes and returns the body with its Content-Type.
func (b *Bot) DownloadFile(ctx context.Context, filePath string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", b.fileURL, filePath), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("telegram file download error %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrFileTooLarge
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// FetchFile resolves and downloads a file in one step.
func (b *Bot) FetchFile(ctx context.Context, fileID string, maxBytes int64) ([]byte, string, error) {
	f, err := b.GetFile(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	if f.FileSize > maxBytes {
		return nil, "", ErrFileTooLarge
	}
	return b.DownloadFile(ctx, f.FilePath, maxBytes)
}

// APIError is a non-ok Bot API reply.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

func (b *Bot) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, &APIError{Code: resp.StatusCode, Description: strings.TrimSpace(string(raw))}
	}
	if !apiResp.OK {
		code := apiResp.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return nil, &APIError{Code: code, Description: apiResp.Description}
	}
	return apiResp.Result, nil
}
