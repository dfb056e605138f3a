package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pnet "linetrack/internal/platform/net"
	"linetrack/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestAnnotate_CopiesRequestIDAndOperator(t *testing.T) {
	var gotReq, gotOp string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = pnet.RequestID(r.Context())
		gotOp = pnet.Operator(r.Context())
	})
	h := chimw.RequestID(middleware.Annotate(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	req.Header.Set(pnet.OperatorHeader, "  dana  ")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if gotReq != "rid-1" {
		t.Fatalf("request id = %q", gotReq)
	}
	if gotOp != "dana" {
		t.Fatalf("operator = %q", gotOp)
	}
	if rr.Header().Get("X-Request-ID") != "rid-1" {
		t.Fatalf("expected request id mirrored on response")
	}
}

func TestAnnotate_TruncatesOperator(t *testing.T) {
	var gotOp string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOp = pnet.Operator(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(pnet.OperatorHeader, strings.Repeat("x", 200))
	middleware.Annotate(next).ServeHTTP(httptest.NewRecorder(), req)
	if len(gotOp) != 64 {
		t.Fatalf("operator len = %d, want 64", len(gotOp))
	}
}

func TestAnnotate_NoHeaders(t *testing.T) {
	var gotOp string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOp = pnet.Operator(r.Context())
	})
	rr := httptest.NewRecorder()
	middleware.Annotate(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if gotOp != "" || rr.Header().Get("X-Request-ID") != "" {
		t.Fatalf("expected nothing set, op=%q", gotOp)
	}
}
