package webhook

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"habit-streak-bot/pkg/log"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

func TestValidateSecretToken(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{Secret: "s3cret"})
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"match", "s3cret", false},
		{"missing", "", true},
		{"wrong", "s3creT", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateSecretToken(tt.token); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSecretToken(%q) = %v", tt.token, err)
			}
		})
	}

	if err := NewSecurityValidator(SecurityConfig{}).ValidateSecretToken(""); err != nil {
		t.Errorf("no secret configured should accept: %v", err)
	}
}

func TestValidateIPAddress(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{AllowedIPs: []string{"149.154.160.0/20", "10.0.0.7"}})
	tests := []struct {
		name    string
		remote  string
		xff     string
		wantErr bool
	}{
		{"telegram range", "149.154.167.220:443", "", false},
		{"exact ip", "10.0.0.7:5555", "", false},
		{"forwarded", "127.0.0.1:80", "149.154.161.1, 10.1.1.1", false},
		{"outside", "8.8.8.8:53", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if err := v.ValidateIPAddress(r); (err != nil) != tt.wantErr {
				t.Errorf("ValidateIPAddress = %v", err)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(10) // burst of 1
	if err := rl.Allow("a"); err != nil {
		t.Fatalf("first request limited: %v", err)
	}
	if err := rl.Allow("a"); err == nil {
		t.Error("second immediate request allowed")
	}
	if err := rl.Allow("b"); err != nil {
		t.Errorf("other source limited: %v", err)
	}
}

func TestTelegramGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := NewGuard(SecurityConfig{Secret: "s3cret", RateLimitPerMin: 10}, log.NewNop())

	r := gin.New()
	r.POST("/webhook/telegram", g.Telegram(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
		req.RemoteAddr = "149.154.167.220:443"
		if token != "" {
			req.Header.Set(pkgTelegram.SecretTokenHeader, token)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("nope"); code != http.StatusUnauthorized {
		t.Errorf("bad secret = %d", code)
	}
	if code := send("s3cret"); code != http.StatusOK {
		t.Errorf("good secret = %d", code)
	}
	if code := send("s3cret"); code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded = %d", code)
	}
}
