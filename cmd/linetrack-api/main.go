// @title         linetrack API
// @version       1.0
// @description   Production line queue, live progress and shift reports

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"linetrack/internal/modkit/repokit"
	"linetrack/internal/platform/config"
	"linetrack/internal/platform/logger"
	phttp "linetrack/internal/platform/net/http"
	"linetrack/internal/platform/store"
	ptime "linetrack/internal/platform/time"

	"linetrack/internal/services/api"
	metamod "linetrack/internal/services/api/meta/module"
	prodmod "linetrack/internal/services/production/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (LINETRACK_API_*)
	root := config.New()
	apiCfg := root.Prefix("LINETRACK_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early
	logger.Init(logger.FromEnv(metamod.ServiceName))
	l := logger.Get()

	// backend choice decides which connections are opened at all
	prod := prodmod.FromConfig(root)
	loc := root.MayLocation("LINETRACK_TIMEZONE", "Local")

	sc := store.Config{AppName: metamod.ServiceName}
	if prod.Backend == prodmod.BackendPG {
		sc.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}
	if prod.ArchiveEnabled {
		sc.CH = store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
			Tag:     "api",
		}
	}

	st, err := store.Open(ctx, sc, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads LINETRACK_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Clock:          ptime.System{},
			Location:       loc,
			Production:     prod,
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
			ExportLimit:    apiCfg.MayInt("EXPORT_LIMIT", 2),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			DocsSuffix:     apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
		},
	)

	l.Info().Str("backend", prod.Backend).Str("zone", loc.String()).Msg("linetrack api starting")

	// run until SIGINT or SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
