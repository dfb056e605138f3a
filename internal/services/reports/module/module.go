// Package module wires report queries into the API using modkit
package module

import (
	modkit "linetrack/internal/modkit"
	"linetrack/internal/modkit/httpkit"
	"linetrack/internal/platform/logger"
	str "linetrack/internal/platform/strings"
	"linetrack/internal/services/reports/domain"
	rephttp "linetrack/internal/services/reports/http"
	"linetrack/internal/services/reports/service"
)

// Module implements the reports module
type Module struct {
	built modkit.Built
	ports Ports
	svc   service.Service
}

// New constructs the reports module over the production history
func New(_ modkit.Deps, history domain.HistorySource, opts ...modkit.Option) *Module {
	if history == nil {
		panic("reports: module needs a history source")
	}
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	svc := service.New(history, service.WithLogger(logger.Named("reports")))
	return &Module{built: b, svc: svc, ports: Ports{Service: svc}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { rephttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }
