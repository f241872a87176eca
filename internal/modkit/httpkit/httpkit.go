// Package httpkit is what module handlers import for routing, binding and
// writing responses
package httpkit

import (
	"net/http"

	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/net/http/bind"
)

type (
	// Router is the routing surface modules register on
	Router = phttp.Router
	// Envelope is the JSON answer shape, named here for swagger annotations
	Envelope = phttp.Envelope
	// BindOptions limits the body Bind reads
	BindOptions = bind.Options
)

// Get registers a GET route answering fn's result in the envelope
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, phttp.Call(fn))
}

// PostJSON registers a POST route that decodes and validates a T body first
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.Bound(fn))
}

// Param returns a path parameter of the matched route
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Bind decodes and validates a JSON body into T
func Bind[T any](r *http.Request, o BindOptions) (T, error) { return bind.JSON[T](r, o) }

// WriteJSON writes v as the bare body, for callers that read their own format
func WriteJSON(w http.ResponseWriter, status int, v any) { phttp.JSON(w, status, v) }

// WriteError writes err in the envelope with its mapped status
func WriteError(w http.ResponseWriter, r *http.Request, err error) { phttp.RespondError(w, r, err) }

// MountAPI mounts the /api/{version} scope behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+version, func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
