package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "devstreams/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func up(context.Context) error { return nil }

func newRouter(d Deps) phttp.Router {
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	return r
}

func get(t *testing.T, r phttp.Router, path string, data any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	env := struct {
		Data any `json:"data"`
	}{Data: data}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s decode: %v", path, err)
	}
	return rec.Code
}

func TestReady(t *testing.T) {
	down := func(context.Context) error { return errors.New("dial tcp 127.0.0.1:9000: connection refused") }

	cases := []struct {
		name   string
		deps   []Dependency
		status int
		states []string
	}{
		{"sqlite only", []Dependency{{"sql", up}, {"clickhouse", nil}}, 200, []string{"ok", "off"}},
		{"both up", []Dependency{{"sql", up}, {"clickhouse", up}}, 200, []string{"ok", "ok"}},
		{"clickhouse down", []Dependency{{"sql", up}, {"clickhouse", down}}, 503, []string{"ok", "fail"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			code := get(t, newRouter(Deps{StartedAt: time.Now(), Dependencies: tc.deps}), "/ready", &got)
			if code != tc.status || got.Ready != (tc.status == 200) || len(got.Dependencies) != len(tc.states) {
				t.Fatalf("code=%d got=%+v", code, got)
			}
			for i, want := range tc.states {
				if got.Dependencies[i].Status != want {
					t.Errorf("%s = %q, want %q", got.Dependencies[i].Name, got.Dependencies[i].Status, want)
				}
			}
		})
	}
}

func TestReadyBoundsPings(t *testing.T) {
	var deadline bool
	slow := func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	}
	var got ReadyResponse
	get(t, newRouter(Deps{Dependencies: []Dependency{{"sql", slow}}}), "/ready", &got)
	if !deadline {
		t.Fatal("ping ctx carries no deadline")
	}
}

func TestService(t *testing.T) {
	r := newRouter(Deps{StartedAt: time.Now().Add(-90 * time.Second)})

	var svc ServiceResponse
	if code := get(t, r, "/service", &svc); code != 200 || svc.Name != "devstreams-api" || svc.Uptime < 90 {
		t.Fatalf("code=%d service=%+v", code, svc)
	}
	var health HealthResponse
	if code := get(t, r, "/health", &health); code != 200 || !health.OK {
		t.Fatalf("code=%d health=%+v", code, health)
	}
	var info map[string]any
	if code := get(t, r, "/version", &info); code != 200 || info["version"] == nil {
		t.Fatalf("code=%d version=%v", code, info)
	}
}
