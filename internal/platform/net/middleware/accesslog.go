package middleware

import (
	"net/http"
	"slices"
	"time"

	"linetrack/internal/platform/logger"

	"github.com/rs/zerolog"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at or over this duration as warn. Zero disables it
	Slow time.Duration
	// Quiet paths log at debug. Dashboards poll status every second
	Quiet []string
}

type statusRecorder struct {
	http.ResponseWriter
	status, bytes int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (o AccessLogOptions) level(path string, status int, took time.Duration) zerolog.Level {
	switch {
	case o.Slow > 0 && took >= o.Slow:
		return zerolog.WarnLevel
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case slices.Contains(o.Quiet, path):
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// AccessLog writes one line per request through the request scoped logger
func AccessLog(o AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			logger.C(r.Context()).WithLevel(o.level(r.URL.Path, rec.status, took)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
