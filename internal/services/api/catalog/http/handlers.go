// Package http provides http transport for the channel catalog
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"devstreams/internal/modkit/httpkit"
	perr "devstreams/internal/platform/errors"
	"devstreams/internal/services/api/catalog/domain"
	svc "devstreams/internal/services/api/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s, now: time.Now}

	httpkit.Get(r, "/channels", h.channels)
	httpkit.Get(r, "/channels/{id}/sessions", h.sessions)
}

type handlers struct {
	svc svc.Service
	now func() time.Time
}

// swagger:route GET /catalog/channels Catalog catalogChannels
// @Summary List channels
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Channel "ok"
// @Router /catalog/channels [get]
func (h *handlers) channels(r *stdhttp.Request) (any, error) {
	return h.svc.AllChannels(r.Context())
}

// swagger:route GET /catalog/channels/{id}/sessions Catalog catalogSessions
// @Summary Upcoming sessions of a channel
// @Tags Catalog
// @Produce json
// @Param id path int true "Channel id"
// @Param after query string false "RFC3339 lower bound, defaults to now"
// @Success 200 {object} domain.ChannelSessions "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /catalog/channels/{id}/sessions [get]
func (h *handlers) sessions(r *stdhttp.Request) (any, error) {
	id, err := strconv.ParseInt(httpkit.Param(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, perr.WithField(perr.InvalidArgf("id must be a positive integer"), "id")
	}

	after := h.now().UTC()
	if s := r.URL.Query().Get("after"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("after must be RFC3339"), "after")
		}
		after = t
	}

	ch, err := h.svc.Channel(r.Context(), id)
	if err != nil {
		return nil, err
	}
	sessions, err := h.svc.FutureSessions(r.Context(), id, after)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.StreamSession{}
	}
	return domain.ChannelSessions{Channel: ch, Sessions: sessions}, nil
}
