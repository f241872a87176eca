// Package repo stores journal events in ClickHouse
package repo

import (
	"context"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/store"
	"devstreams/internal/services/journal/domain"
)

// Table is the events table name
const Table = "intent_events"

// Schema creates the events table
const Schema = `CREATE TABLE IF NOT EXISTS intent_events (
	event_id   UUID,
	request_id String,
	kind       LowCardinality(String),
	intent     LowCardinality(String),
	outcome    LowCardinality(String),
	channel    String,
	live_count UInt16,
	elapsed_ms UInt32,
	at         DateTime64(3, 'UTC')
) ENGINE = MergeTree
PARTITION BY toYYYYMM(at)
ORDER BY (at, event_id)`

// Storage is the journal repository
type Storage interface {
	Insert(ctx context.Context, xs []domain.Event) error
	CountByOutcome(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error)
}

type chRepo struct{ ch store.Clickhouse }

// NewCH binds the repository to a ClickHouse seam
func NewCH(ch store.Clickhouse) Storage {
	if ch == nil {
		panic("journal: repo requires a non-nil Clickhouse")
	}
	return &chRepo{ch: ch}
}

// Insert writes one batch
func (r *chRepo) Insert(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.ID,
			e.RequestID,
			e.Kind,
			e.Intent,
			e.Outcome,
			e.Channel,
			uint16(min(max(e.LiveCount, 0), 65535)),
			uint32(min(max(e.ElapsedMS, 0), 1<<32-1)),
			e.At.UTC(),
		})
	}
	if err := r.ch.Insert(ctx, Table, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "journal insert of %d events", len(xs))
	}
	return nil
}

// CountByOutcome aggregates events at or after since
func (r *chRepo) CountByOutcome(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	rows, err := r.ch.Query(ctx, `
		SELECT outcome, count() AS n
		FROM intent_events
		WHERE at >= ?
		GROUP BY outcome
		ORDER BY n DESC, outcome ASC`, since.UTC())
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "journal query")
	}
	defer rows.Close()

	var out []domain.OutcomeCount
	for rows.Next() {
		var c domain.OutcomeCount
		if err := rows.Scan(&c.Outcome, &c.Count); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "journal scan")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "journal rows")
	}
	return out, nil
}
