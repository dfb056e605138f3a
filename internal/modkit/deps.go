// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"linetrack/internal/modkit/repokit"
	"linetrack/internal/platform/config"
	"linetrack/internal/platform/logger"
	"linetrack/internal/platform/store"
	ptime "linetrack/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner // nil unless the pg backend is enabled
	CH    store.Clickhouse // nil unless the archive is enabled
	Clock ptime.Clock
	Loc   *time.Location
}

// Now reads Clock, falling back to the wall clock
func (d Deps) Now() ptime.Clock {
	if d.Clock == nil {
		return ptime.System{}
	}
	return d.Clock
}

// Location returns Loc or time.Local
func (d Deps) Location() *time.Location {
	if d.Loc == nil {
		return time.Local
	}
	return d.Loc
}
