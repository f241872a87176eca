package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"devstreams/internal/services/api/assistant/domain"
	catdom "devstreams/internal/services/api/catalog/domain"
)

type fakeLive struct {
	users map[string]string // login -> id
	live  map[string]bool
	uErr  error
	sErr  error

	userCalls   atomic.Int32
	streamCalls atomic.Int32

	// when set UserIDs signals entered and blocks until release is closed
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *fakeLive) UserIDs(ctx context.Context, logins []string) (map[string]string, error) {
	f.userCalls.Add(1)
	if f.release != nil {
		f.once.Do(func() { close(f.entered) })
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.uErr != nil {
		return nil, f.uErr
	}
	out := map[string]string{}
	for _, l := range logins {
		if id, ok := f.users[l]; ok {
			out[l] = id
		}
	}
	return out, nil
}

func (f *fakeLive) LiveIDs(_ context.Context, ids []string) (map[string]bool, error) {
	f.streamCalls.Add(1)
	if f.sErr != nil {
		return nil, f.sErr
	}
	out := map[string]bool{}
	for _, id := range ids {
		if f.live[id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeCatalog struct {
	channels []catdom.Channel
	sessions []catdom.StreamSession
	allErr   error
	sessErr  error
	calls    int
}

func (f *fakeCatalog) AllChannels(context.Context) ([]catdom.Channel, error) {
	f.calls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.channels, nil
}

func (f *fakeCatalog) FutureSessions(_ context.Context, channelID int64, after time.Time) ([]catdom.StreamSession, error) {
	f.calls++
	if f.sessErr != nil {
		return nil, f.sessErr
	}
	var out []catdom.StreamSession
	for _, s := range f.sessions {
		if s.ChannelID == channelID && s.UTCStartTime.After(after) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTZ struct {
	zone  string
	err   error
	calls int
}

func (f *fakeTZ) TimeZone(context.Context, domain.DeviceContext) (string, error) {
	f.calls++
	return f.zone, f.err
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []domain.JournalEntry
	err     error
}

func (f *fakeJournal) Record(_ context.Context, e domain.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return f.err
}
