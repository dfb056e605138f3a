package module

import (
	"linetrack/internal/platform/config"
	"linetrack/internal/services/production/repo"
)

// Backends for the production document
const (
	BackendFile = "file"
	BackendPG   = "pg"
)

// Options controls where the production document lives and where finished reports go
type Options struct {
	Backend        string
	File           string
	ArchiveEnabled bool
	ArchiveTable   string
}

// FromConfig reads LINETRACK_STORE_* and LINETRACK_ARCHIVE_*
func FromConfig(cfg config.Conf) Options {
	st := cfg.Prefix("LINETRACK_STORE_")
	ar := cfg.Prefix("LINETRACK_ARCHIVE_")
	return Options{
		Backend:        st.MayEnum("BACKEND", BackendFile, BackendFile, BackendPG),
		File:           st.MayString("FILE", "data.json"),
		ArchiveEnabled: ar.MayBool("ENABLED", false),
		ArchiveTable:   ar.MayString("TABLE", repo.DefaultArchiveTable),
	}
}

// merge applies non-zero overrides on top of o
func (o Options) merge(over Options) Options {
	if over.Backend != "" {
		o.Backend = over.Backend
	}
	if over.File != "" {
		o.File = over.File
	}
	if over.ArchiveEnabled {
		o.ArchiveEnabled = true
	}
	if over.ArchiveTable != "" {
		o.ArchiveTable = over.ArchiveTable
	}
	return o
}
