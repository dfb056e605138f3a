// Package http serves the meta routes: build info and readiness
package http

import (
	"context"
	"net/http"
	"time"

	"linetrack/internal/core/version"
	"linetrack/internal/modkit/httpkit"
	ptime "linetrack/internal/platform/time"
)

const readyTimeout = 2 * time.Second

// Check states, worst last
const (
	CheckSkipped = "skipped"
	CheckOK      = "ok"
	CheckUnknown = "unknown"
	CheckFail    = "fail"
)

// Deps feeds the meta routes. A nil PG or CH means that backend is not in use
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	PG, CH      any
}

// ReadyCheck is one backend probe
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok, degraded (a backend cannot be probed) or fail
type ReadyResponse struct {
	Status  string       `json:"status"  example:"ok"`
	Service string       `json:"service" example:"linetrack-api"`
	Uptime  int64        `json:"uptime"  example:"300"`
	Checks  []ReadyCheck `json:"checks"`
}

type handlers struct{ d Deps }

// Register mounts GET /version and GET /ready
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	h := handlers{d: d}
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/ready", h.ready)
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.d.ServiceName), nil
}

// @Summary Readiness with backend probes
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	res := ReadyResponse{
		Status:  "ok",
		Service: h.d.ServiceName,
		Uptime:  int64(h.d.Clock.Now().Sub(h.d.StartedAt) / time.Second),
		Checks:  []ReadyCheck{probe(ctx, "pg", h.d.PG), probe(ctx, "ch", h.d.CH)},
	}
	for _, c := range res.Checks {
		switch c.Status {
		case CheckFail:
			res.Status = "fail"
		case CheckUnknown:
			if res.Status == "ok" {
				res.Status = "degraded"
			}
		}
	}
	return res, nil
}

func probe(ctx context.Context, name string, backend any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: CheckSkipped}
	if backend == nil {
		return c
	}
	p, ok := backend.(interface{ Ping(context.Context) error })
	if !ok {
		c.Status = CheckUnknown
		return c
	}
	if err := p.Ping(ctx); err != nil {
		c.Status, c.Error = CheckFail, err.Error()
		return c
	}
	c.Status = CheckOK
	return c
}
