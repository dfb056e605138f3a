// Package api composes the linetrack HTTP API from its modules
package api

import (
	"time"

	"linetrack/internal/platform/config"
	"linetrack/internal/platform/logger"
	phttp "linetrack/internal/platform/net/http"
	"linetrack/internal/platform/store"
	ptime "linetrack/internal/platform/time"

	"linetrack/internal/modkit"
	"linetrack/internal/modkit/httpkit"
	"linetrack/internal/modkit/module"
	"linetrack/internal/modkit/swaggerkit"

	metamod "linetrack/internal/services/api/meta/module"
	proddomain "linetrack/internal/services/production/domain"
	prodmod "linetrack/internal/services/production/module"
	reportsmod "linetrack/internal/services/reports/module"
)

// statusPath is polled by every open dashboard, its access log goes to debug
const statusPath = "/api/v1/production/status"

// Options are the API options
type Options struct {
	// Config is the root config, modules apply their own prefixes
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
	Clock  ptime.Clock
	// Location is the plant time zone for shifts and report timestamps
	Location *time.Location

	Production prodmod.Options

	CORSOrigins []string
	SlowRequest time.Duration
	// ExportLimit caps concurrent report requests, workbooks are rendered in memory. 0 means no cap
	ExportLimit    int
	EnableSwagger  bool
	EnableProfiler bool
	DocsSuffix     string
}

// Mount mounts the API onto r and returns the modules in mount order
// r must not have routes yet since the common stack is installed with Use
func Mount(r phttp.Router, opt Options) []module.Module {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    st.PG,
		CH:    st.CH,
		Clock: opt.Clock,
		Loc:   opt.Location,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// production owns the document, reports read its history through the port
	production := prodmod.New(deps, opt.Production)
	history := module.MustPortsOf[proddomain.HistoryPort](production)

	var reportOpts []modkit.Option
	if opt.ExportLimit > 0 {
		reportOpts = append(reportOpts, modkit.WithMiddlewares(httpkit.Throttle(opt.ExportLimit)))
	}

	mods := []module.Module{
		metamod.New(deps),
		production,
		reportsmod.New(deps, history, reportOpts...),
	}

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		AccessLog: httpkit.AccessLogOptions{
			Slow:  opt.SlowRequest,
			Quiet: []string{statusPath},
		},
	})...)

	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger, TitleSuffix: opt.DocsSuffix})
	if opt.EnableProfiler {
		phttp.MountProfiler(r, "/debug")
	}

	log := logger.Named("api")
	httpkit.MountAPIV1(r, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return mods
}
