package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

const (
	MessageSuccess = "Success"

	codeBadRequest      = 400
	codeForbidden       = 403
	codeUnauthorized    = 401
	codeTooManyRequests = 429
	codeUnavailable     = 503
)
