// Package context carries per-request values between echo middleware, handlers and usecases.
package context

// HeaderXRequestID is the header a request ID is read from and echoed back in.
const HeaderXRequestID = "X-Request-Id"

// key names one per-request value. echo.Context stores it under its string form,
// context.Context under the typed key.
type key string

const (
	keyRequestID   key = "request_id"
	keyLogger      key = "logger"
	keyCurrentUser key = "current_user"
)
