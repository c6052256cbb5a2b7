package webhook

import (
	"github.com/gin-gonic/gin"

	"habit-streak-bot/pkg/response"
	pkgTelegram "habit-streak-bot/pkg/telegram"
)

// Telegram is the middleware for POST /webhook/telegram: IP allow-list,
// then the secret token header, then a per-source rate limit.
func (g *Guard) Telegram() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := g.security.ValidateIPAddress(c.Request); err != nil {
			g.l.Warnf(ctx, "webhook guard: %v", err)
			response.Forbidden(c, "forbidden")
			return
		}

		if err := g.security.ValidateSecretToken(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
			g.l.Warnf(ctx, "webhook guard: %v", err)
			response.Unauthorized(c, "invalid secret token")
			return
		}

		if err := g.security.CheckRateLimit(extractIP(c.Request)); err != nil {
			g.l.Warnf(ctx, "webhook guard: %v", err)
			response.TooManyRequests(c, "rate limit exceeded")
			return
		}

		c.Next()
	}
}
