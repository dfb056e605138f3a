// Package middleware builds the handler chain every linetrack API request goes through
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pnet "linetrack/internal/platform/net"
	pstrings "linetrack/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultTimeout = 30 * time.Second

// StackOptions tunes Defaults
type StackOptions struct {
	// CORSOrigins defaults to any origin
	CORSOrigins []string
	Timeout     time.Duration
	AccessLog   AccessLogOptions
}

// Defaults returns the root middleware chain, outermost first
func Defaults(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		Annotate,
		RecoverJSON,
		AccessLog(o.AccessLog),
		chimw.NoCache,
		CORS(o.CORSOrigins),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.Heartbeat("/health"),
		chimw.StripSlashes,
		chimw.Timeout(timeout),
	}
}

// CORS lets dashboards on other origins call the API and read export file names
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: pstrings.IfEmpty(origins, []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", pnet.OperatorHeader},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	})
}

// Throttle caps concurrent requests through the wrapped handler. Overflow gets 429
func Throttle(limit int) func(http.Handler) http.Handler { return chimw.Throttle(limit) }
