// Package module wires the channel catalog into the API
package module

import (
	"devstreams/internal/modkit"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/services/api/catalog/domain"
	cathttp "devstreams/internal/services/api/catalog/http"
	catrepo "devstreams/internal/services/api/catalog/repo"
	catsvc "devstreams/internal/services/api/catalog/service"
)

// Module is the catalog module, mounted at /catalog
type Module struct {
	modkit.Base
	svc catsvc.Service
}

// New constructs the catalog module over deps.SQL
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{
		Base: modkit.Build("catalog", "/catalog", opts...),
		svc:  catsvc.New(deps.SQL, catrepo.NewSQL()),
	}
}

// MountRoutes mounts the read endpoints
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(sub phttp.Router) { cathttp.Register(sub, m.svc) })
}

// CatalogPort is the read port other modules consume
func (m *Module) CatalogPort() domain.ServicePort { return m.svc }
