// Package service buffers journal events and writes them in batches
package service

import (
	"context"
	"sync"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"
	adom "devstreams/internal/services/api/assistant/domain"
	"devstreams/internal/services/journal/domain"
	"devstreams/internal/services/journal/repo"

	"github.com/google/uuid"
)

// ErrBufferFull is returned by Record when the writer cannot keep up
var ErrBufferFull = perr.New(perr.ErrorCodeRateLimited, "journal buffer full")

// ErrClosed is returned by Record after Close
var ErrClosed = perr.New(perr.ErrorCodeUnavailable, "journal closed")

// Config tunes batching
type Config struct {
	BatchSize  int
	FlushEvery time.Duration
	Buffer     int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.FlushEvery <= 0 {
		c.FlushEvery = 2 * time.Second
	}
	if c.Buffer <= 0 {
		c.Buffer = 1024
	}
	return c
}

// Service records events without blocking callers. A background loop drains
// the buffer into the repository, Close flushes what is left
type Service struct {
	store repo.Storage
	cfg   Config
	log   logger.Logger

	mu     sync.RWMutex
	closed bool
	in     chan domain.Event
	done   chan struct{}
}

var (
	_ adom.JournalPort = (*Service)(nil)
	_ domain.QueryPort = (*Service)(nil)
)

// New starts the writer loop
func New(store repo.Storage, cfg Config) *Service {
	if store == nil {
		panic("journal: service requires a non-nil repo")
	}
	cfg = cfg.withDefaults()
	s := &Service{
		store: store,
		cfg:   cfg,
		log:   *logger.Named("journal"),
		in:    make(chan domain.Event, cfg.Buffer),
		done:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Record enqueues one assistant outcome
func (s *Service) Record(_ context.Context, e adom.JournalEntry) error {
	ev := domain.Event{
		ID:        uuid.New(),
		RequestID: e.RequestID,
		Kind:      e.Kind.String(),
		Intent:    e.Intent,
		Outcome:   string(e.Outcome),
		Channel:   e.Channel,
		LiveCount: e.LiveCount,
		ElapsedMS: e.Elapsed.Milliseconds(),
		At:        e.At,
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.in <- ev:
		return nil
	default:
		return ErrBufferFull
	}
}

// Summary counts outcomes since the given time
func (s *Service) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	rows, err := s.store.CountByOutcome(ctx, since)
	if err != nil {
		return domain.Summary{}, err
	}
	out := domain.Summary{Since: since.UTC(), Outcomes: rows}
	if out.Outcomes == nil {
		out.Outcomes = []domain.OutcomeCount{}
	}
	for _, r := range rows {
		out.Total += r.Count
	}
	return out, nil
}

// Close stops accepting events, flushes the buffer and waits for the loop
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.in)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) loop() {
	defer close(s.done)

	t := time.NewTicker(s.cfg.FlushEvery)
	defer t.Stop()

	batch := make([]domain.Event, 0, s.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Insert(ctx, batch); err != nil {
			s.log.Warn().Err(err).Int("dropped", len(batch)).Msg("journal flush failed")
		} else {
			s.log.Debug().Int("events", len(batch)).Msg("journal flushed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case ev, ok := <-s.in:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= s.cfg.BatchSize {
				flush()
			}
		case <-t.C:
			flush()
		}
	}
}
