package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"habit-streak-bot/pkg/log"
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// Logging tags the request context with a request id and logs one line per
// request once the handler chain has finished.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.WithFields(c.Request.Context(), "request_id", id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "http %s %s %d %s", c.Request.Method, c.FullPath(), status, time.Since(start))
		case status >= 400:
			m.l.Warnf(ctx, "http %s %s %d %s", c.Request.Method, c.FullPath(), status, time.Since(start))
		default:
			m.l.Debugf(ctx, "http %s %s %d %s", c.Request.Method, c.FullPath(), status, time.Since(start))
		}
	}
}
