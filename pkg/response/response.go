package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends 400 with the error text and optional field details.
func Error(c *gin.Context, err error, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: codeBadRequest,
		Message:   err.Error(),
		Data:      data,
	})
}

// Unauthorized aborts with 401.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, codeUnauthorized, message)
}

// Forbidden aborts with 403.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, codeForbidden, message)
}

// TooManyRequests aborts with 429.
func TooManyRequests(c *gin.Context, message string) {
	abort(c, http.StatusTooManyRequests, codeTooManyRequests, message)
}

// Unavailable aborts with 503.
func Unavailable(c *gin.Context, message string) {
	abort(c, http.StatusServiceUnavailable, codeUnavailable, message)
}

func abort(c *gin.Context, status, code int, message string) {
	c.AbortWithStatusJSON(status, Resp{
		ErrorCode: code,
		Message:   message,
	})
}
