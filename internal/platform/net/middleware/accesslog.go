// Package middleware holds the request stack every API module runs behind
package middleware

import (
	"net/http"
	"time"

	"devstreams/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog logs one line per request. Requests slower than slow log at
// warn, 0 disables that. The chi request id is copied onto ctx so logger.C
// downstream carries it, mount it after chimw.RequestID
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			r = r.WithContext(logger.WithRequest(r.Context(), chimw.GetReqID(r.Context()), ""))
			next.ServeHTTP(ww, r)

			took := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case slow > 0 && took >= slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("request")
		})
	}
}
