package middleware

import (
	"net/http"
	"strings"

	"linetrack/internal/platform/logger"
	pnet "linetrack/internal/platform/net"
)

// maxOperatorLen bounds the operator header before it reaches logs
const maxOperatorLen = 64

// Annotate copies the chi request id and the X-Operator header onto the
// request context so pnet getters and logger.C both see them.
// Mount it after RequestID.
func Annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := pnet.RequestID(ctx)
		op := strings.TrimSpace(r.Header.Get(pnet.OperatorHeader))
		if len(op) > maxOperatorLen {
			op = op[:maxOperatorLen]
		}
		ctx = pnet.WithRequest(ctx, reqID, op)
		ctx = logger.WithRequest(ctx, reqID, op)
		if reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
