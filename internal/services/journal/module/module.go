// Package module implements the intent journal module
package module

import (
	"context"

	"devstreams/internal/modkit"
	phttp "devstreams/internal/platform/net/http"
	adom "devstreams/internal/services/api/assistant/domain"
	jhttp "devstreams/internal/services/journal/http"
	"devstreams/internal/services/journal/repo"
	"devstreams/internal/services/journal/service"
)

// Module is the journal module, mounted at /journal. deps.CH must be set
type Module struct {
	modkit.Base
	svc *service.Service
}

// New constructs the journal and starts its writer
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	return &Module{
		Base: modkit.Build("journal", "/journal", opts...),
		svc: service.New(repo.NewCH(deps.CH), service.Config{
			BatchSize:  o.BatchSize,
			FlushEvery: o.FlushEvery,
			Buffer:     o.Buffer,
		}),
	}
}

// Recorder is where the assistant reports handled requests
func (m *Module) Recorder() adom.JournalPort { return m.svc }

// MountRoutes mounts the summary route
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(sub phttp.Router) { jhttp.Register(sub, m.svc) })
}

// Close flushes pending events
func (m *Module) Close(ctx context.Context) error { return m.svc.Close(ctx) }
