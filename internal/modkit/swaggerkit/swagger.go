// Package swaggerkit serves the swagger UI and an OpenAPI document of the
// routes the API mounts
package swaggerkit

import (
	"net/http"

	"devstreams/internal/core/version"
	phttp "devstreams/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

type route struct {
	method, path, tag, summary string
}

var routes = []route{
	{"get", "/v1/meta/health", "meta", "Liveness"},
	{"get", "/v1/meta/ready", "meta", "Backend readiness"},
	{"get", "/v1/meta/version", "meta", "Build information"},
	{"get", "/v1/meta/service", "meta", "Service name and uptime"},
	{"get", "/v1/catalog/channels", "catalog", "Every known channel"},
	{"get", "/v1/catalog/channels/{id}/sessions", "catalog", "Upcoming sessions of a channel"},
	{"post", "/v1/assistant/intents", "assistant", "Dispatch an intent without the voice envelope"},
	{"get", "/v1/journal/summary", "journal", "Intent counts over a window"},
	{"post", "/alexa/devstreams", "assistant", "Voice skill endpoint"},
}

// Doc builds the OpenAPI document
func Doc() map[string]any {
	paths := map[string]any{}
	for _, rt := range routes {
		ops, _ := paths[rt.path].(map[string]any)
		if ops == nil {
			ops = map[string]any{}
			paths[rt.path] = ops
		}
		ops[rt.method] = map[string]any{
			"tags":    []string{rt.tag},
			"summary": rt.summary,
			"responses": map[string]any{
				"200": map[string]any{"description": "OK"},
			},
		}
	}
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "DevStreams API",
			"version": version.Info().Version,
		},
		"servers": []any{map[string]any{"url": "/api"}},
		"paths":   paths,
	}
}

// Mount serves the UI under /api/docs/ and the document at
// /api/docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, Doc())
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
