// Package http serves the meta routes: liveness, readiness, build and uptime
package http

import (
	"context"
	"net/http"
	"time"

	"devstreams/internal/core/version"
	"devstreams/internal/modkit/httpkit"
)

// ReadyTimeout bounds all dependency pings of one /ready call
const ReadyTimeout = 2 * time.Second

// Dependency is a backend /ready pings. A nil Ping reports "off", the
// backend is not configured in this process
type Dependency struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	StartedAt    time.Time
	Dependencies []Dependency
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse answers /health
type HealthResponse struct {
	OK  bool   `json:"ok"  example:"true"`
	Now string `json:"now" example:"2026-03-03T13:05:00Z"`
}

// DependencyStatus is the outcome of one ping
type DependencyStatus struct {
	Name   string `json:"name"   example:"sql"`
	Status string `json:"status" example:"ok"` // ok fail off
	Error  string `json:"error,omitempty"`
	TookMS int64  `json:"took_ms"`
}

// ReadyResponse answers /ready
type ReadyResponse struct {
	Ready        bool               `json:"ready"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// ServiceResponse answers /service
type ServiceResponse struct {
	Name    string `json:"name"    example:"devstreams-api"`
	Started string `json:"started" example:"2026-03-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /v1/meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Now: h.now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Backend readiness, 503 when a configured backend fails its ping
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /v1/meta/ready [get]
func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Ready: true, Dependencies: make([]DependencyStatus, 0, len(h.deps.Dependencies))}
	for _, d := range h.deps.Dependencies {
		st := DependencyStatus{Name: d.Name, Status: "off"}
		if d.Ping != nil {
			start := h.now()
			err := d.Ping(ctx)
			st.TookMS = h.now().Sub(start).Milliseconds()
			st.Status = "ok"
			if err != nil {
				st.Status, st.Error = "fail", err.Error()
				out.Ready = false
			}
		}
		out.Dependencies = append(out.Dependencies, st)
	}

	status := http.StatusOK
	if !out.Ready {
		status = http.StatusServiceUnavailable
	}
	httpkit.WriteJSON(w, status, httpkit.Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Data:       out,
	})
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /v1/meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service name and uptime in seconds
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /v1/meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    version.Info().Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
