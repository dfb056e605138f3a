package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"linetrack/internal/platform/net/middleware"
)

func TestAccessLog_LeavesResponseAlone(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("queued "))
		_, _ = w.Write([]byte("bracket"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/production/items", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "queued bracket" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}
