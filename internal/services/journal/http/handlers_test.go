package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/services/journal/domain"

	"github.com/go-chi/chi/v5"
)

type fakeQuery struct{ since time.Time }

func (f *fakeQuery) Summary(_ context.Context, since time.Time) (domain.Summary, error) {
	f.since = since
	return domain.Summary{Since: since, Outcomes: []domain.OutcomeCount{}}, nil
}

func get(t *testing.T, q *fakeQuery, target string) int {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, q)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rec.Code
}

func TestSummary_Window(t *testing.T) {
	q := &fakeQuery{}
	before := time.Now()
	if code := get(t, q, "/summary?window=1h"); code != stdhttp.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if d := before.Sub(q.since); d < 59*time.Minute || d > 61*time.Minute {
		t.Fatalf("since offset = %v", d)
	}

	if code := get(t, q, "/summary"); code != stdhttp.StatusOK {
		t.Fatalf("default window status = %d", code)
	}
}

func TestSummary_BadWindow(t *testing.T) {
	for _, w := range []string{"nope", "-1h", "10000h"} {
		if code := get(t, &fakeQuery{}, "/summary?window="+w); code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("window %q status = %d, want 422", w, code)
		}
	}
}
