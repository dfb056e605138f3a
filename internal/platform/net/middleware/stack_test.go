package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pnet "linetrack/internal/platform/net"
	"linetrack/internal/platform/net/middleware"
)

func chain(mws []func(http.Handler) http.Handler, h http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestDefaults(t *testing.T) {
	var seenID, seenOp string
	h := chain(middleware.Defaults(middleware.StackOptions{}), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = pnet.RequestID(r.Context())
		seenOp = pnet.Operator(r.Context())
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("row,", 2048)))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	req.Header.Set(pnet.OperatorHeader, "dana")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || seenID != "rid-7" || seenOp != "dana" {
		t.Fatalf("code=%d id=%q op=%q", rr.Code, seenID, seenOp)
	}
	for _, hdr := range []string{"Cache-Control", "Content-Encoding"} {
		if rr.Header().Get(hdr) == "" {
			t.Errorf("%s not set", hdr)
		}
	}

	seenID = ""
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || seenID != "" {
		t.Fatalf("heartbeat should answer before the handler, code=%d", rr.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS([]string{"https://floor.example"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/production/items", nil)
	req.Header.Set("Origin", "https://floor.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", pnet.OperatorHeader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "https://floor.example" {
		t.Fatalf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("operator header not allowed")
	}
}

func TestThrottle(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	h := middleware.Throttle(1)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		close(entered)
		<-release
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first request never ran")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	close(release)
	wg.Wait()

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rr.Code)
	}
}
