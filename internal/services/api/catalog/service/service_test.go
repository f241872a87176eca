package service

import (
	"context"
	"testing"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/store"
	"devstreams/internal/platform/testkit"
	"devstreams/internal/services/api/catalog/repo"
)

func openCatalog(t *testing.T) store.DB {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: store.Memory}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.SQL.Exec(ctx, repo.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	seed := []struct {
		sql  string
		args []any
	}{
		{`insert into channels (id, name) values ($1, $2)`, []any{2, "CSharpFritz"}},
		{`insert into channels (id, name) values ($1, $2)`, []any{1, "DevChatter"}},
		{`insert into stream_sessions (id, channel_id, utc_start_time) values ($1, $2, $3)`,
			[]any{10, 1, time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)}},
		{`insert into stream_sessions (id, channel_id, utc_start_time) values ($1, $2, $3)`,
			[]any{11, 1, time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)}},
		{`insert into stream_sessions (id, channel_id, utc_start_time) values ($1, $2, $3)`,
			[]any{12, 1, time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC)}},
		{`insert into stream_sessions (id, channel_id, utc_start_time) values ($1, $2, $3)`,
			[]any{13, 2, time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC)}},
	}
	for _, q := range seed {
		if _, err := s.SQL.Exec(ctx, q.sql, q.args...); err != nil {
			t.Fatalf("seed %q: %v", q.sql, err)
		}
	}
	return s.SQL
}

func TestAllChannels_OrderedByID(t *testing.T) {
	svc := New(openCatalog(t), repo.NewSQL())
	got, err := svc.AllChannels(context.Background())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[0].Name != "DevChatter" || got[1].ID != 2 {
		t.Fatalf("channels = %+v", got)
	}
}

func TestFutureSessions_AscendingAfterInstant(t *testing.T) {
	svc := New(openCatalog(t), repo.NewSQL())
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := svc.FutureSessions(context.Background(), 1, after)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 2 || got[0].ID != 11 || got[1].ID != 10 {
		t.Fatalf("sessions = %+v", got)
	}
	if !got[0].UTCStartTime.Equal(time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got[0].UTCStartTime)
	}
	if got[0].UTCStartTime.Location() != time.UTC {
		t.Fatalf("start not in UTC: %v", got[0].UTCStartTime.Location())
	}
}

func TestFutureSessions_NoneForUnknownChannel(t *testing.T) {
	svc := New(openCatalog(t), repo.NewSQL())
	got, err := svc.FutureSessions(context.Background(), 99, time.Time{})
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestChannel_NotFound(t *testing.T) {
	svc := New(openCatalog(t), repo.NewSQL())
	if _, err := svc.Channel(context.Background(), 42); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v", err)
	}
	ch, err := svc.Channel(context.Background(), 2)
	if err != nil || ch.Name != "CSharpFritz" {
		t.Fatalf("ch=%+v err=%v", ch, err)
	}
}

func TestNew_PanicsOnNil(t *testing.T) {
	testkit.MustPanic(t, func() { _ = New(nil, repo.NewSQL()) })
	testkit.MustPanic(t, func() { _ = New(openCatalog(t), nil) })
}
