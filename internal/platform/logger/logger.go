// Package logger owns the process zerolog logger and its request scoped
// children. Read it through Get, Named or C
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	JSON    bool
	Service string
	Caller  bool
	Writer  io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT (console|json), LOG_SERVICE and
// LOG_CALLER. It reads the env directly since config logs through this package
func FromEnv() Options {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	return Options{
		Level:   get("LOG_LEVEL", "info"),
		JSON:    strings.EqualFold(get("LOG_FORMAT", "console"), "json"),
		Service: get("LOG_SERVICE", ""),
		Caller:  strings.EqualFold(get("LOG_CALLER", "false"), "true"),
	}
}

// New builds a logger from opt without touching the process root
func New(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if !opt.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(opt.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	b := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		b = b.Str("service", opt.Service)
	}
	if opt.Caller {
		b = b.Caller()
	}
	return b.Logger()
}

var root atomic.Pointer[Logger]

// Init installs the root logger. Only the first call has an effect
func Init(opt Options) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opt)
	root.CompareAndSwap(nil, &l)
}

// Get returns the root logger, initializing it from the env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keySkillRequestID
)

// WithRequest stores the transport request id and the id the voice platform
// gave the request. Empty ids are not stored
func WithRequest(ctx context.Context, reqID, skillReqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if skillReqID != "" {
		ctx = context.WithValue(ctx, keySkillRequestID, skillReqID)
	}
	return ctx
}

// C returns a child of the root carrying the ids stored by WithRequest
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keySkillRequestID).(string); s != "" {
		b = b.Str("skill_request_id", s)
	}
	l := b.Logger()
	return &l
}
