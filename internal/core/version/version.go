// Package version reports which build of linetrack is running
package version

import (
	"runtime"
	"runtime/debug"
)

// stamped with -ldflags "-X linetrack/internal/core/version.version=v1.2.0 ..."
var (
	version = "dev"
	commit  string
	date    string
)

// BuildInfo is served at /meta/version and printed by linetrackctl version
type BuildInfo struct {
	Service string `json:"service" example:"linetrack-api"`
	Version string `json:"version" example:"v1.2.0"`
	Commit  string `json:"commit"  example:"3f9c2ab"`
	Date    string `json:"date"    example:"2024-01-15T06:00:00Z"`
	Go      string `json:"go"      example:"go1.22.4"`
}

// Info describes this binary. Unstamped commit and date fall back to the vcs
// settings go build embeds, then to "none" and "unknown"
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if b, ok := debug.ReadBuildInfo(); ok {
		for _, s := range b.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value[:min(7, len(s.Value))]
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
