// Package modkit is the seam API modules are built on: shared deps, the
// module surface and a base carrying name, prefix and middleware
package modkit

import (
	"net/http"
	"strings"

	"devstreams/internal/platform/config"
	"devstreams/internal/platform/logger"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/store"
)

// Deps are the process wide handles modules draw from. SQL and CH may be
// nil when the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	SQL store.DB
	CH  store.Clickhouse
}

// Module is anything mountable under the versioned API
type Module interface {
	Name() string
	Prefix() string
	MountRoutes(r phttp.Router)
}

// Option adjusts a Base
type Option func(*Base)

// WithPrefix overrides the route prefix
func WithPrefix(p string) Option { return func(b *Base) { b.prefix = p } }

// WithMiddlewares appends module scoped middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// Base is embedded by modules for Name, Prefix and Mount
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
}

// Build returns the base for a module named name mounted at prefix.
// It panics on an empty name, modules are wired at startup
func Build(name, prefix string, opts ...Option) Base {
	if strings.TrimSpace(name) == "" {
		panic("modkit: module name is empty")
	}
	b := Base{name: name, prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	b.prefix = "/" + strings.Trim(b.prefix, "/")
	return b
}

// Name is the module name used in logs
func (b Base) Name() string { return b.name }

// Prefix is the route prefix, always with one leading slash
func (b Base) Prefix() string { return b.prefix }

// Mount calls register on a subrouter at the prefix behind the module middleware
func (b Base) Mount(r phttp.Router, register func(phttp.Router)) {
	r.Route(b.prefix, func(sub phttp.Router) {
		sub.Use(b.mw...)
		register(sub)
	})
}
