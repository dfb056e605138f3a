// Package module wires meta endpoints into the API
package module

import (
	modkit "linetrack/internal/modkit"
	"linetrack/internal/modkit/httpkit"
	str "linetrack/internal/platform/strings"

	metahttp "linetrack/internal/services/api/meta/http"
)

// ServiceName is reported by health and version endpoints
const ServiceName = "linetrack-api"

// Module serves health, readiness and build info
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module, uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   deps.Now().Now(),
			Clock:       deps.Now(),
			PG:          deps.PG,
			CH:          deps.CH,
		},
	}
}

// MountRoutes mounts the meta routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports is nil, meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }
