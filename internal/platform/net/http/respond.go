package http

import (
	"encoding/json"
	"net/http"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope wraps every JSON API answer. The skill endpoint is the exception,
// the voice platform reads its own format
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as the whole body
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Warn().Err(err).Msg("response write failed")
	}
}

// Respond writes data in a 200 envelope
func Respond(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  chimw.GetReqID(r.Context()),
		Data:       data,
	})
}

// RespondError writes err in an envelope with the status its code maps to.
// Server side failures are logged with their cause, which the body omits
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)
	if status >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  chimw.GetReqID(r.Context()),
	})
}
