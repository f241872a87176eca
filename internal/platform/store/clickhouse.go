package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// chConn is the part of driver.Conn the journal needs
type chConn interface {
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

var dialCH = func(o *clickhouse.Options) (chConn, error) { return clickhouse.Open(o) }

type chDB struct{ conn chConn }

func openCH(ctx context.Context, c CHConfig, app string) (*chDB, error) {
	if strings.TrimSpace(c.URL) == "" {
		return nil, errors.New("clickhouse: empty url")
	}
	opts, err := clickhouse.ParseDSN(c.URL)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(app, c.Role)

	conn, err := dialCH(opts)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("clickhouse: ping: %w", err)
	}
	return &chDB{conn: conn}, nil
}

// Insert sends rows to table as one batch
func (d *chDB) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	b, err := d.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("clickhouse: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("clickhouse: row %d of %s: %w", i, table, err)
		}
	}
	return b.Send()
}

func (d *chDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := d.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (d *chDB) Ping(ctx context.Context) error { return d.conn.Ping(ctx) }

func (d *chDB) Close() error { return d.conn.Close() }

type chRows struct{ driver.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

// clientInfo tags connections so system.query_log shows who wrote
func clientInfo(app, role string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	rev := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				rev = s.Value[:7]
			}
		}
	}
	orUnknown := func(s string) string {
		if s = strings.TrimSpace(s); s == "" {
			return "unknown"
		}
		return s
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: orUnknown(app), Version: rev},
		{Name: "role", Version: orUnknown(role)},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: orUnknown(host)},
	}}
}
