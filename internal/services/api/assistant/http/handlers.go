// Package http provides http transport for the assistant: the skill endpoint
// speaking the voice platform format and a JSON debug endpoint
package http

import (
	stdhttp "net/http"
	"time"

	"devstreams/internal/modkit/httpkit"
	"devstreams/internal/platform/logger"
	"devstreams/internal/services/api/assistant/domain"
)

const maxSkillBody = 256 << 10

// Register mounts the debug endpoints under the module prefix
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s, now: time.Now}
	httpkit.PostJSON(r, "/intents", h.intents)
}

// RegisterSkill mounts the skill endpoint
func RegisterSkill(r httpkit.Router, s domain.ServicePort, g Guard) {
	h := &handlers{svc: s, guard: g, now: time.Now}
	r.Post("/devstreams", h.skill)
}

type handlers struct {
	svc   domain.ServicePort
	guard Guard
	now   func() time.Time
}

// swagger:route POST /assistant/intents Assistant assistantIntents
// @Summary Run an intent through the dispatcher
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body domain.IntentInput true "Intent"
// @Success 200 {object} domain.IntentResponse "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /assistant/intents [post]
func (h *handlers) intents(r *stdhttp.Request, in domain.IntentInput) (any, error) {
	return h.svc.Handle(r.Context(), in.ToIntentRequest(h.now())), nil
}

// skill answers the voice platform. Unreadable payloads get an empty
// acknowledgment so the device never sees a failure, guard failures are 400
func (h *handlers) skill(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	body, err := httpkit.Bind[domain.AlexaRequest](r, httpkit.BindOptions{MaxBytes: maxSkillBody})
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("unreadable skill request")
		httpkit.WriteJSON(w, stdhttp.StatusOK, domain.IntentResponse{Empty: true}.ToAlexa())
		return
	}

	in := body.ToIntentRequest()
	ctx := logger.WithRequest(r.Context(), "", in.RequestID)
	log := logger.C(ctx)
	if err := h.guard.Check(in); err != nil {
		log.Error().Err(err).
			Str("application_id", in.ApplicationID).
			Time("timestamp", in.Timestamp).
			Msg("skill request rejected")
		httpkit.WriteError(w, r, err)
		return
	}

	out := h.svc.Handle(ctx, in)
	httpkit.WriteJSON(w, stdhttp.StatusOK, out.ToAlexa())
}
