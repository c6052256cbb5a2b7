package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

var errNoTunnels = errors.New("ngrok has no active tunnels")

// ngrokProbe polls the ngrok local API until a tunnel shows up; ngrok
// usually starts alongside the bot and needs a few seconds.
type ngrokProbe struct {
	client   *http.Client
	attempts int
	wait     time.Duration
}

func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	p := ngrokProbe{client: &http.Client{Timeout: 5 * time.Second}, attempts: 10, wait: 3 * time.Second}
	return p.detect(ctx, ngrokAPIBase)
}

func (p ngrokProbe) detect(ctx context.Context, base string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		url, err := p.once(ctx, base+"/api/tunnels")
		if err == nil {
			return url, nil
		}
		lastErr = err
		if attempt == p.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.wait):
		}
	}
	return "", fmt.Errorf("ngrok not ready after %d attempts: %w", p.attempts, lastErr)
}

// once returns the first HTTPS tunnel, else any tunnel.
func (p ngrokProbe) once(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", errNoTunnels
}
