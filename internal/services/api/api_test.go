package api

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devstreams/internal/platform/config"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/store"
	kit "devstreams/internal/platform/testkit"
	catrepo "devstreams/internal/services/api/catalog/repo"

	"github.com/go-chi/chi/v5"
)

type staticLive struct{}

func (staticLive) UserIDs(_ context.Context, logins []string) (map[string]string, error) {
	out := map[string]string{}
	for _, l := range logins {
		if l == "devchatter" {
			out[l] = "42"
		}
	}
	return out, nil
}

func (staticLive) LiveIDs(_ context.Context, ids []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range ids {
		if id == "42" {
			out[id] = true
		}
	}
	return out, nil
}

func mountTest(t *testing.T) stdhttp.Handler {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: store.Memory}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })
	if _, err := st.SQL.Exec(ctx, catrepo.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	next := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
	if _, err := st.SQL.Exec(ctx, `insert into channels (id, name) values ($1, $2)`, 1, "DevChatter"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := st.SQL.Exec(ctx, `insert into stream_sessions (id, channel_id, utc_start_time) values ($1, $2, $3)`, 1, 1, next); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mux := chi.NewRouter()
	closer := Mount(phttp.AdaptChi(mux), Options{
		Config: config.New(),
		Store:  st,
		Live:   staticLive{},
	})
	t.Cleanup(func() { _ = closer(ctx) })
	return mux
}

func TestMount_MetaAndCatalog(t *testing.T) {
	h := mountTest(t)
	for _, path := range []string{"/api/v1/meta/health", "/api/v1/meta/ready", "/api/v1/catalog/channels"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("%s = %d %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestMount_JournalOffByDefault(t *testing.T) {
	h := mountTest(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/journal/summary", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMount_SkillAnswersWhenNext(t *testing.T) {
	h := mountTest(t)
	body := `{"version":"1.0","request":{"type":"IntentRequest","requestId":"r1","timestamp":"` +
		time.Now().UTC().Format(time.RFC3339) +
		`","intent":{"name":"whenNextIntent","slots":{"channel":{"name":"channel","value":"devchatter"}}}}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/alexa/devstreams", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Response struct {
			OutputSpeech struct {
				Text string `json:"text"`
			} `json:"outputSpeech"`
		} `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	kit.MustContain(t, out.Response.OutputSpeech.Text, "DevChatter")
}

func TestMount_DebugWhoIsLive(t *testing.T) {
	h := mountTest(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/assistant/intents",
		strings.NewReader(`{"type":"IntentRequest","intent":"whoIsLiveIntent"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	kit.MustContain(t, rec.Body.String(), "live_now")
	kit.MustContain(t, rec.Body.String(), "DevChatter")
}

func TestMount_UnknownChannelIs404(t *testing.T) {
	h := mountTest(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/catalog/channels/99/sessions", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	kit.MustContain(t, rec.Body.String(), `"code":"not_found"`, `"request_id"`)
}

func TestOrigins(t *testing.T) {
	got := origins(" https://a.example, ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("origins = %q", got)
	}
	if origins("") != nil {
		t.Fatal("empty list should be nil")
	}
}
