package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultCalendarID = "primary"
	defaultDuration   = 30 * time.Minute

	// DefaultTokenPath is where scripts/gcal-auth writes the OAuth token.
	DefaultTokenPath = "token.json"
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a Service Account
// or installed-app JSON file. Installed-app credentials need a token at tokenPath.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, tokenPath)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw credentials JSON.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	// Service Account path
	jwt, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(jwt.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return &Client{service: svc}, nil
	}

	oauthConfig, cfgErr := OAuthConfig(credentialsJSON)
	if cfgErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}
	tokenData, tokenErr := os.ReadFile(tokenPath)
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no %s found: run scripts/gcal-auth first", tokenPath)
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tokenPath, jsonErr)
	}

	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}
	return &Client{service: svc}, nil
}

// OAuthConfig reads installed-app credentials into an oauth2 config.
func OAuthConfig(credentialsJSON []byte) (*oauth2.Config, error) {
	var creds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if err := json.Unmarshal(credentialsJSON, &creds); err != nil {
		return nil, err
	}
	if creds.Installed.ClientID == "" {
		return nil, errors.New("missing installed.client_id")
	}

	cfg := &oauth2.Config{
		ClientID:     creds.Installed.ClientID,
		ClientSecret: creds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}
	if len(creds.Installed.RedirectURIs) > 0 {
		cfg.RedirectURL = creds.Installed.RedirectURIs[0]
	}
	return cfg, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateEvent inserts a (possibly recurring) event.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (*Event, error) {
	created, err := c.service.Events.Insert(calendarID(req.CalendarID), toEvent(req)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return fromEvent(created, req), nil
}

// UpdateEvent replaces the event's summary, time and recurrence.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, req EventRequest) (*Event, error) {
	updated, err := c.service.Events.Update(calendarID(req.CalendarID), eventID, toEvent(req)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}
	return fromEvent(updated, req), nil
}

// DeleteEvent removes an event. An event that is already gone is not an error.
func (c *Client) DeleteEvent(ctx context.Context, calID, eventID string) error {
	err := c.service.Events.Delete(calendarID(calID), eventID).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

func toEvent(req EventRequest) *calendar.Event {
	d := req.Duration
	if d <= 0 {
		d = defaultDuration
	}
	return &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.StartTime.Add(d).Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		Recurrence: req.Recurrence,
	}
}

func fromEvent(e *calendar.Event, req EventRequest) *Event {
	d := req.Duration
	if d <= 0 {
		d = defaultDuration
	}
	return &Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		HtmlLink:    e.HtmlLink,
		StartTime:   req.StartTime,
		EndTime:     req.StartTime.Add(d),
		Recurrence:  e.Recurrence,
	}
}

func calendarID(id string) string {
	if id == "" {
		return defaultCalendarID
	}
	return id
}
