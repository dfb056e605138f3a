package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"linetrack/internal/modkit"
	"linetrack/internal/modkit/module"
	"linetrack/internal/platform/config"
	phttp "linetrack/internal/platform/net/http"
	"linetrack/internal/platform/testkit"
	"linetrack/internal/services/reports/domain"

	"github.com/go-chi/chi/v5"
)

type history []domain.Report

func (h history) History(context.Context) ([]domain.Report, error) { return h, nil }

func TestNew_MountsUnderReports(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()}, history{{Item: "x", Shift: "A", Count: 2}})
	if m.Name() != "reports" || m.Prefix() != "/reports" {
		t.Fatalf("name/prefix = %q %q", m.Name(), m.Prefix())
	}

	svc := module.MustPortsOf[domain.ServicePort](m)
	rows, err := svc.Totals(context.Background())
	if err != nil || rows[0].Count != 2 {
		t.Fatalf("totals = %+v, %v", rows, err)
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	for _, p := range []string{"/reports", "/reports/totals", "/reports/export"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", p, rec.Code)
		}
	}
}

func TestNew_PanicsWithoutHistory(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}, nil) })
}

func TestNew_AppliesModuleMiddleware(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "reports")
			next.ServeHTTP(w, r)
		})
	}
	m := New(modkit.Deps{}, history{}, modkit.WithMiddlewares(tag), modkit.WithPrefix("/r"))

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r/totals", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "reports" {
		t.Fatalf("GET /r/totals = %d %v", rec.Code, rec.Header())
	}
}
