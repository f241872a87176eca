// Package module mounts the meta routes
package module

import (
	"time"

	"devstreams/internal/modkit"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/store"
	metahttp "devstreams/internal/services/api/meta/http"
)

// Module is the meta module, mounted at /meta
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// New constructs the meta module. /ready pings deps.SQL and deps.CH
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{
		Base: modkit.Build("meta", "/meta", opts...),
		deps: metahttp.Deps{
			StartedAt: time.Now(),
			Dependencies: []metahttp.Dependency{
				dependency("sql", deps.SQL),
				dependency("clickhouse", deps.CH),
			},
		},
	}
}

func dependency(name string, backend any) metahttp.Dependency {
	d := metahttp.Dependency{Name: name}
	if p, ok := backend.(store.Pinger); ok {
		d.Ping = p.Ping
	}
	return d
}

// MountRoutes mounts the meta routes
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(sub phttp.Router) { metahttp.Register(sub, m.deps) })
}
