package modkit

import (
	"net/http"
	"slices"

	"linetrack/internal/modkit/httpkit"
	str "linetrack/internal/platform/strings"
)

// Built is a module's name, route prefix and module scoped middleware
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// Option sets part of a Built. Modules pass their defaults first so callers can override them
type Option func(*Built)

func WithName(name string) Option { return func(b *Built) { b.Name = name } }

func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends mw, which then only wraps this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var b Built
	for _, apply := range opts {
		apply(&b)
	}
	b.Mw = slices.Clip(b.Mw)
	return b
}

// Mount opens a route group at Prefix, installs Mw and hands the group to register.
// An invalid Prefix panics
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(g httpkit.Router) {
		g.Use(b.Mw...)
		register(g)
	})
}
