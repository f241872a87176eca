// Package module wires the assistant into the API
package module

import (
	"net/http"

	"devstreams/internal/modkit"
	"devstreams/internal/modkit/httpkit"
	"devstreams/internal/platform/logger"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/services/api/assistant/domain"
	ahttp "devstreams/internal/services/api/assistant/http"
	asvc "devstreams/internal/services/api/assistant/service"
)

// Ports are what the assistant needs from the rest of the process.
// Catalog and Live are required
type Ports struct {
	Catalog  domain.CatalogPort
	Live     domain.LiveSource
	Timezone domain.TimezonePort
	Journal  domain.JournalPort
}

// Module is the assistant module. Besides the debug route under /assistant
// it owns the skill endpoint at /api/alexa/devstreams
type Module struct {
	modkit.Base
	svc   *asvc.Service
	guard ahttp.Guard
}

// New constructs the assistant module. It panics when a required port is nil
func New(deps modkit.Deps, p Ports, opts ...modkit.Option) *Module {
	if p.Catalog == nil || p.Live == nil {
		panic("assistant module requires Catalog and Live ports")
	}
	cfg := FromConfig(deps.Cfg)
	if cfg.SkillID == "" {
		logger.Named("assistant").Warn().Msg("CORE_API_SKILL_ID is empty, skill requests are not checked against an application id")
	}

	return &Module{
		Base: modkit.Build("assistant", "/assistant", opts...),
		svc: asvc.New(p.Catalog, p.Live, asvc.Options{
			MinDifference: cfg.MinDifference,
			MinSimilarity: cfg.MinSimilarity,
			LiveTimeout:   cfg.LiveTimeout,
			Timezone:      p.Timezone,
			Journal:       p.Journal,
		}),
		guard: ahttp.Guard{SkillID: cfg.SkillID, Tolerance: cfg.Tolerance},
	}
}

// MountRoutes mounts the debug route on the versioned router
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(sub phttp.Router) { ahttp.Register(sub, m.svc) })
}

// MountSkill mounts POST /api/alexa/devstreams on the root router
func (m *Module) MountSkill(r phttp.Router, mw []func(http.Handler) http.Handler) {
	httpkit.MountAPI(r, "alexa", mw, func(api phttp.Router) {
		ahttp.RegisterSkill(api, m.svc, m.guard)
	})
}

// Dispatcher is the intent dispatcher
func (m *Module) Dispatcher() domain.ServicePort { return m.svc }
