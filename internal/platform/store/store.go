// Package store opens the catalog database and the optional ClickHouse
// journal sink. Repos program against DB and Clickhouse, never the drivers
package store

import (
	"context"
	"errors"
	"fmt"

	"devstreams/internal/platform/logger"
)

// Row is one result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set. Close must be called once iteration stops
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Result reports what a statement changed
type Result interface {
	RowsAffected() int64
}

// DB is the catalog surface. Statements use $N placeholders on every backend
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Pinger is implemented by every backend Open returns
type Pinger interface {
	Ping(ctx context.Context) error
}

// Clickhouse is the journal surface. Insert takes row values in column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

type pinger interface{ Ping(context.Context) error }

// Store holds whichever backends Open enabled. Unset backends are nil
type Store struct {
	Log logger.Logger

	// SQL is postgres when configured, the embedded sqlite file otherwise
	SQL DB
	CH  Clickhouse
}

// Option adjusts the Store before backends open
type Option func(*Store)

// WithLogger routes backend logs and statement traces through l
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.Log = l }
}

// Open connects the backends enabled in cfg. A ClickHouse failure closes the
// SQL backend already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	var err error
	switch {
	case cfg.PG.Enabled:
		s.SQL, err = openPG(ctx, cfg.PG, s.Log)
	case cfg.Lite.Enabled:
		s.SQL, err = openLite(ctx, cfg.Lite, s.Log)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg.CH, cfg.AppName); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: not opened")
	}
	var errs []error
	if p, ok := s.SQL.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("sql: %w", err))
		}
	}
	if p, ok := s.CH.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clickhouse: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
