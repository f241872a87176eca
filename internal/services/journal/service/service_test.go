package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	perr "devstreams/internal/platform/errors"
	adom "devstreams/internal/services/api/assistant/domain"
	"devstreams/internal/services/journal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	batches [][]domain.Event
	err     error
	counts  []domain.OutcomeCount
	since   time.Time
}

func (f *fakeStore) Insert(_ context.Context, xs []domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]domain.Event(nil), xs...))
	return f.err
}

func (f *fakeStore) CountByOutcome(_ context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	f.since = since
	return f.counts, f.err
}

func (f *fakeStore) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func entry(id string) adom.JournalEntry {
	return adom.JournalEntry{
		RequestID: id,
		Kind:      adom.RequestIntent,
		Intent:    adom.NameWhoIsLive,
		Outcome:   adom.OutcomeLiveNow,
		LiveCount: 2,
		Elapsed:   42 * time.Millisecond,
		At:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecord_FlushesOnClose(t *testing.T) {
	st := &fakeStore{}
	s := New(st, Config{BatchSize: 100, FlushEvery: time.Hour})

	for i := range 3 {
		if err := s.Record(context.Background(), entry(string(rune('a'+i)))); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if st.total() != 3 || len(st.batches) != 1 {
		t.Fatalf("batches = %d total = %d", len(st.batches), st.total())
	}

	ev := st.batches[0][0]
	if ev.RequestID != "a" || ev.Kind != "intent" || ev.Outcome != "live_now" || ev.ElapsedMS != 42 || ev.LiveCount != 2 {
		t.Fatalf("event = %+v", ev)
	}
	if ev.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("event id not set")
	}
}

func TestRecord_FlushesFullBatches(t *testing.T) {
	st := &fakeStore{}
	s := New(st, Config{BatchSize: 2, FlushEvery: time.Hour})
	for i := range 4 {
		_ = s.Record(context.Background(), entry(string(rune('a'+i))))
	}
	_ = s.Close(context.Background())
	if len(st.batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(st.batches))
	}
}

func TestRecord_FlushesOnTicker(t *testing.T) {
	st := &fakeStore{}
	s := New(st, Config{BatchSize: 100, FlushEvery: 10 * time.Millisecond})
	defer func() { _ = s.Close(context.Background()) }()

	_ = s.Record(context.Background(), entry("a"))
	deadline := time.Now().Add(2 * time.Second)
	for st.total() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("ticker flush never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRecord_AfterCloseAndFailuresDoNotPanic(t *testing.T) {
	st := &fakeStore{err: errors.New("clickhouse down")}
	s := New(st, Config{})
	_ = s.Record(context.Background(), entry("a"))
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := s.Record(context.Background(), entry("b")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Record after close = %v, want ErrClosed", err)
	}
}

func TestSummary_Totals(t *testing.T) {
	st := &fakeStore{counts: []domain.OutcomeCount{{Outcome: "live_now", Count: 5}, {Outcome: "not_found", Count: 2}}}
	s := New(st, Config{})
	defer func() { _ = s.Close(context.Background()) }()

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sum, err := s.Summary(context.Background(), since)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total != 7 || len(sum.Outcomes) != 2 || !st.since.Equal(since) {
		t.Fatalf("summary = %+v", sum)
	}

	st.counts = nil
	sum, _ = s.Summary(context.Background(), since)
	if sum.Outcomes == nil || sum.Total != 0 {
		t.Fatalf("empty summary = %+v", sum)
	}

	st.err = perr.Unavailablef("down")
	if _, err := s.Summary(context.Background(), since); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}
