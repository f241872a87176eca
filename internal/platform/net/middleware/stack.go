package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// StackOptions tunes Stack. Zero values pick the defaults
type StackOptions struct {
	// Origins allowed for browser callers, empty allows any
	Origins []string
	// Slow is the access log warn threshold, default 500ms
	Slow time.Duration
	// Timeout cancels the request ctx, default 30s
	Timeout time.Duration
}

// Stack is the middleware chain for JSON API modules, outermost first
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Slow == 0 {
		o.Slow = 500 * time.Millisecond
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if len(o.Origins) == 0 {
		o.Origins = []string{"*"}
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		AccessLog(o.Slow),
		Recover,
		chimw.NoCache,
		cors.Handler(cors.Options{
			AllowedOrigins: o.Origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.StripSlashes,
		chimw.Timeout(o.Timeout),
	}
}
