// Package module wires the production line into the API using modkit
package module

import (
	"context"
	"time"

	modkit "linetrack/internal/modkit"
	"linetrack/internal/modkit/httpkit"
	"linetrack/internal/modkit/repokit"
	"linetrack/internal/platform/logger"
	str "linetrack/internal/platform/strings"
	"linetrack/internal/services/production/domain"
	prodhttp "linetrack/internal/services/production/http"
	"linetrack/internal/services/production/repo"
	"linetrack/internal/services/production/service"
)

// startupTimeout bounds schema creation and dependency pings in New
const startupTimeout = 10 * time.Second

// Module implements the production module
type Module struct {
	built modkit.Built
	ports Ports
	opts  Options
	svc   service.Service
}

// New constructs the production module. Options left zero fall back to FromConfig
// panics when the configured backend or archive has no connection in deps
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("production"), modkit.WithPrefix("/production")}, opts...)...)
	o := FromConfig(deps.Cfg).merge(overrides)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	log := logger.Named("production")
	svc := service.New(
		openStore(ctx, deps, o),
		service.WithClock(deps.Now()),
		service.WithLocation(deps.Location()),
		service.WithSinks(openSink(ctx, deps, o)),
		service.WithLogger(log),
	)
	log.Info().Str("backend", o.Backend).Bool("archive", o.ArchiveEnabled).
		Str("zone", deps.Location().String()).Msg("production module ready")

	return &Module{built: b, opts: o, svc: svc, ports: Ports{Service: svc, History: svc}}
}

func openStore(ctx context.Context, deps modkit.Deps, o Options) domain.StateStore {
	if o.Backend != BackendPG {
		return repo.NewFileStore(o.File)
	}
	if deps.PG == nil {
		panic("production: backend pg needs a postgres connection")
	}
	st := repo.NewPGStore(deps.PG, repo.NewPG())
	if err := st.EnsureSchema(ctx); err != nil {
		panic("production: " + err.Error())
	}
	return st
}

func openSink(ctx context.Context, deps modkit.Deps, o Options) domain.ReportSink {
	if !o.ArchiveEnabled {
		return repo.NoopSink{}
	}
	repokit.MustPing(ctx, "clickhouse archive", deps.CH)
	return repo.NewCHSink(deps.CH, o.ArchiveTable)
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { prodhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Options returns the resolved backend and archive settings
func (m *Module) Options() Options { return m.opts }
