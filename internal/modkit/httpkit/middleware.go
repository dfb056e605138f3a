package httpkit

import (
	"net/http"

	"linetrack/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions = middleware.StackOptions

// AccessLogOptions tunes the access log inside CommonStack
type AccessLogOptions = middleware.AccessLogOptions

// CommonStack returns the middleware slice installed on the root router, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return middleware.Defaults(o)
}

// Throttle caps in flight requests for whatever it wraps, callers over the limit get 429
func Throttle(limit int) func(http.Handler) http.Handler {
	return middleware.Throttle(limit)
}
