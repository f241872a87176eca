package middleware

import (
	"net/http"
	"runtime/debug"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"
	phttp "devstreams/internal/platform/net/http"
)

// Recover turns a panic into a 500 envelope and logs the stack. Aborted
// handlers (http.ErrAbortHandler) are re-panicked for net/http to handle
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.New(perr.ErrorCodePanic, "internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
