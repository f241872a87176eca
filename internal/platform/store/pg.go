package store

import (
	"context"
	"fmt"
	"time"

	"devstreams/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgDB struct{ pool *pgxpool.Pool }

// openPG builds the pool and waits for the server to answer. Compose stacks
// start the api before postgres accepts connections
func openPG(ctx context.Context, c PGConfig, l logger.Logger) (*pgDB, error) {
	pcfg, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if c.MaxConns > 0 {
		pcfg.MaxConns = c.MaxConns
	}
	if t := newTracer(l, "postgres", c.Trace); t != nil {
		pcfg.ConnConfig.Tracer = pgxTracer{t}
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: pool: %w", err)
	}

	attempts := max(c.Attempts, 1)
	timeout := c.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	wait := 150 * time.Millisecond
	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = pool.Ping(pctx)
		cancel()
		if err == nil {
			return &pgDB{pool: pool}, nil
		}
		if i == attempts {
			break
		}
		l.Warn().Err(err).Int("attempt", i).Dur("retry_in", wait).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, 2*time.Second)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres: no answer after %d attempts: %w", attempts, err)
}

func (d *pgDB) Exec(ctx context.Context, sql string, args ...any) (Result, error) {
	tag, err := d.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (d *pgDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (d *pgDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return d.pool.QueryRow(ctx, sql, args...)
}

func (d *pgDB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *pgDB) Close() error {
	d.pool.Close()
	return nil
}

// pgxTracer feeds pgx query hooks into the statement log
type pgxTracer struct{ t *tracer }

type pgxStartKey struct{}

type pgxStart struct {
	sql  string
	args []any
	at   time.Time
}

func (p pgxTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, pgxStartKey{}, pgxStart{sql: d.SQL, args: d.Args, at: time.Now()})
}

func (p pgxTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(pgxStartKey{}).(pgxStart)
	if !ok {
		return
	}
	p.t.done(ctx, s.sql, s.args, s.at, d.Err)
}
