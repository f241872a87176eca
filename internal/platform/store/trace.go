package store

import (
	"context"
	"strings"
	"time"

	"devstreams/internal/platform/logger"

	"github.com/rs/zerolog"
)

// tracer logs statements for one backend. A nil tracer logs nothing
type tracer struct {
	log  logger.Logger
	slow time.Duration
}

// newTracer returns nil unless t.On. Statement lines bypass the process level
// so LOG_SQL works without LOG_LEVEL=debug
func newTracer(l logger.Logger, backend string, t Trace) *tracer {
	if !t.On {
		return nil
	}
	return &tracer{
		log:  l.Level(zerolog.DebugLevel).With().Str("backend", backend).Logger(),
		slow: t.Slow,
	}
}

func (t *tracer) done(_ context.Context, sql string, args []any, start time.Time, err error) {
	if t == nil {
		return
	}
	took := time.Since(start)
	slow := t.slow > 0 && took >= t.slow

	ev := t.log.Debug()
	switch {
	case err != nil:
		ev = t.log.Error().Err(err)
	case slow:
		ev = t.log.Warn()
	}
	ev.Str("sql", squash(sql)).
		Int("args", len(args)).
		Dur("took", took).
		Bool("slow", slow).
		Msg("statement")
}

// squash folds whitespace runs so multi line statements log on one line
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
