package store

import (
	"time"

	"devstreams/internal/platform/config"
)

// Config selects and tunes the backends
type Config struct {
	// AppName is reported to ClickHouse as client info
	AppName string

	PG   PGConfig
	Lite LiteConfig
	CH   CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	Trace    Trace

	// Attempts and PingTimeout bound the startup wait for the server
	Attempts    int
	PingTimeout time.Duration
}

// LiteConfig configures the embedded database used when postgres is off
type LiteConfig struct {
	Enabled bool
	// Path is a file path or Memory
	Path  string
	Trace Trace
}

// CHConfig configures the journal connection
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
}

// Trace turns on statement logging. Statements slower than Slow log at warn
type Trace struct {
	On   bool
	Slow time.Duration
}

// FromEnv reads SERVICE_PGSQL_*, SERVICE_SQLITE_* and SERVICE_CLICKHOUSE_*.
// Postgres is used when SERVICE_PGSQL_DBURL is set and sqlite otherwise.
// ClickHouse is on when its url is set
func FromEnv(root config.Conf, app string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lt := root.Prefix("SERVICE_SQLITE_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pg.MayString("DBURL", "")
	chURL := ch.MayString("DBURL", "")

	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:  pgURL != "",
			URL:      pgURL,
			MaxConns: int32(pg.MayInt("MAX_CONNS", 4)),
			Trace: Trace{
				On:   pg.MayBool("LOG_SQL", false),
				Slow: pg.MayDuration("SLOW", 500*time.Millisecond),
			},
			Attempts:    pg.MayInt("CONNECT_ATTEMPTS", 20),
			PingTimeout: pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		Lite: LiteConfig{
			Enabled: pgURL == "",
			Path:    lt.MayString("PATH", "devstreams.db"),
			Trace: Trace{
				On:   lt.MayBool("LOG_SQL", false),
				Slow: lt.MayDuration("SLOW", 500*time.Millisecond),
			},
		},
		CH: CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    ch.MayString("ROLE", ""),
		},
	}
}
