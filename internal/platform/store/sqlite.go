package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"devstreams/internal/platform/logger"

	// registers the pure go "sqlite" driver
	_ "modernc.org/sqlite"
)

// Memory opens a private in-memory database
const Memory = ":memory:"

type liteDB struct {
	db    *sql.DB
	trace *tracer
}

func openLite(ctx context.Context, c LiteConfig, l logger.Logger) (*liteDB, error) {
	path := strings.TrimSpace(c.Path)
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if path == Memory {
		// a second connection would see a different empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &liteDB{db: db, trace: newTracer(l, "sqlite", c.Trace)}, nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// rebind rewrites $N as ?N so repos keep one dialect
func rebind(q string) string { return placeholder.ReplaceAllString(q, "?$1") }

type liteResult struct{ n int64 }

func (r liteResult) RowsAffected() int64 { return r.n }

func (d *liteDB) Exec(ctx context.Context, q string, args ...any) (Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, rebind(q), args...)
	d.trace.done(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return liteResult{n: n}, nil
}

func (d *liteDB) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := d.db.QueryContext(ctx, rebind(q), args...)
	d.trace.done(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{rs}, nil
}

func (d *liteDB) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteRow{d: d, ctx: ctx, q: q, args: args, start: time.Now(), row: d.db.QueryRowContext(ctx, rebind(q), args...)}
}

func (d *liteDB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

func (d *liteDB) Close() error { return d.db.Close() }

// liteRow traces once Scan reports the statement outcome
type liteRow struct {
	d     *liteDB
	ctx   context.Context
	q     string
	args  []any
	start time.Time
	row   *sql.Row
}

func (r liteRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.d.trace.done(r.ctx, r.q, r.args, r.start, err)
	return err
}

type liteRows struct{ *sql.Rows }

func (r liteRows) Close() { _ = r.Rows.Close() }
