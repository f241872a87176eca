package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devstreams/internal/platform/config"
	perr "devstreams/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type intentIn struct {
	Type    string `json:"type" validate:"required"`
	Channel string `json:"channel" validate:"max=16"`
}

func newTestRouter() Router {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	r := AdaptChi(mux)
	r.Route("/api/v1/catalog", func(api Router) {
		api.Get("/channels/{id}", Call(func(req *http.Request) (any, error) {
			if URLParam(req, "id") != "1" {
				return nil, perr.WithField(perr.NotFoundf("channel %s not found", URLParam(req, "id")), "id")
			}
			return map[string]string{"name": "DevChatter"}, nil
		}))
		api.Get("/broken", Call(func(*http.Request) (any, error) {
			return nil, perr.Wrap(fmt.Errorf("dial tcp 10.0.0.5:5432: refused"), perr.ErrorCodeDB, "list channels")
		}))
	})
	r.Post("/intents", Bound(func(_ *http.Request, in intentIn) (any, error) {
		return in.Channel, nil
	}))
	return r
}

func do(t *testing.T, r Router, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestEnvelopeSuccess(t *testing.T) {
	rec, env := do(t, newTestRouter(), http.MethodGet, "/api/v1/catalog/channels/1", "")
	if rec.Code != http.StatusOK || env.StatusCode != 200 || env.Status != "OK" || env.RequestID == "" {
		t.Fatalf("env = %+v", env)
	}
	if data, _ := env.Data.(map[string]any); data["name"] != "DevChatter" {
		t.Fatalf("data = %#v", env.Data)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestEnvelopeErrors(t *testing.T) {
	r := newTestRouter()

	rec, env := do(t, r, http.MethodGet, "/api/v1/catalog/channels/7", "")
	if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.Field != "id" || env.Error != "channel 7 not found" {
		t.Fatalf("not found env = %+v", env)
	}

	rec, env = do(t, r, http.MethodGet, "/api/v1/catalog/broken", "")
	if rec.Code != http.StatusInternalServerError || env.Error != "list channels" {
		t.Fatalf("db env = %+v", env)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("cause leaked: %s", rec.Body.String())
	}
}

func TestBoundValidates(t *testing.T) {
	r := newTestRouter()

	rec, env := do(t, r, http.MethodPost, "/intents", `{"type":"IntentRequest","channel":"devchatter"}`)
	if rec.Code != http.StatusOK || env.Data != "devchatter" {
		t.Fatalf("env = %+v", env)
	}

	rec, env = do(t, r, http.MethodPost, "/intents", `{"type":"IntentRequest","channel":"a channel name far too long"}`)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeValidation || env.Field != "channel" {
		t.Fatalf("env = %+v", env)
	}

	rec, env = do(t, r, http.MethodPost, "/intents", `{"type":"IntentRequest","slots":{}}`)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeJSON {
		t.Fatalf("unknown field env = %+v", env)
	}
}

func TestMountProfiler(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", false)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("profiler mounted while off: %d", rec.Code)
	}

	MountProfiler(r, "/debug", true)
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("profiler status = %d", rec.Code)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()

	t.Setenv("CORE_API_PORT", fmt.Sprint(port))
	s := NewServer(config.New().Prefix("CORE_API_"))
	if s.Addr() != fmt.Sprintf(":%d", port) {
		t.Fatalf("addr = %s", s.Addr())
	}
	s.Router().Get("/ping", Call(func(*http.Request) (any, error) { return "pong", nil }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
