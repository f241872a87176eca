// Package http exposes the intent journal summary
package http

import (
	stdhttp "net/http"
	"time"

	"devstreams/internal/modkit/httpkit"
	perr "devstreams/internal/platform/errors"
	"devstreams/internal/services/journal/domain"
)

const maxWindow = 90 * 24 * time.Hour

// Register mounts journal endpoints
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{q: q, now: time.Now}
	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct {
	q   domain.QueryPort
	now func() time.Time
}

// swagger:route GET /journal/summary Journal journalSummary
// @Summary Outcome counts of recent assistant requests
// @Tags Journal
// @Produce json
// @Param window query string false "Go duration, defaults to 24h"
// @Success 200 {object} domain.Summary "ok"
// @Failure 422 {object} httpkit.Envelope
// @Router /journal/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	window := 24 * time.Hour
	if s := r.URL.Query().Get("window"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 || d > maxWindow {
			return nil, perr.WithField(perr.InvalidArgf("window must be a positive duration up to 2160h"), "window")
		}
		window = d
	}
	return h.q.Summary(r.Context(), h.now().Add(-window))
}
