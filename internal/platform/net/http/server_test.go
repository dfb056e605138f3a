package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"linetrack/internal/platform/config"
	phttp "linetrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultAddrAndOptions(t *testing.T) {
	called := false
	srv := phttp.NewServer(config.New().Prefix("LINETRACK_TEST_UNSET_"), func(*chi.Mux) { called = true })
	if !called {
		t.Fatalf("option not applied")
	}
	if srv.Addr() != ":4000" {
		t.Fatalf("addr = %q, want :4000", srv.Addr())
	}

	srv.Router().Get("/ping", write("pong"))
	if rec := do(srv.Router().Mux(), http.MethodGet, "/ping"); rec.Body.String() != "pong" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestNewServer_AddrFromEnv(t *testing.T) {
	t.Setenv("LINETRACK_API_ADDR", ":12345")
	srv := phttp.NewServer(config.New().Prefix("LINETRACK_API_"))
	if srv.Addr() != ":12345" {
		t.Fatalf("expected addr :12345, got %q", srv.Addr())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_ShutdownUnblocksRun(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}
