package repokit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"devstreams/internal/platform/store"
	"devstreams/internal/platform/testkit"
)

type guardFunc func(context.Context) error

func (f guardFunc) Guard(ctx context.Context) error { return f(ctx) }

func TestMustGuardPanicsWithCause(t *testing.T) {
	v := testkit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error {
			return errors.New("sql: connection refused")
		}))
	})
	if !strings.Contains(fmt.Sprint(v), "connection refused") {
		t.Fatalf("panic = %v", v)
	}
	testkit.MustPanic(t, func() { MustGuard(context.Background(), nil) })
}

func TestMustGuardDeadline(t *testing.T) {
	var got time.Time
	record := guardFunc(func(ctx context.Context) error {
		got, _ = ctx.Deadline()
		return nil
	})

	start := time.Now()
	MustGuard(context.Background(), record)
	if d := got.Sub(start); d < GuardTimeout-time.Second || d > GuardTimeout+time.Second {
		t.Fatalf("default deadline %v away", d)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	want, _ := ctx.Deadline()
	MustGuard(ctx, record)
	if !got.Equal(want) {
		t.Fatalf("deadline = %v, want %v", got, want)
	}
}

func TestMustBind(t *testing.T) {
	b := BindFunc[string](func(q Queryer) string { return fmt.Sprintf("%T", q) })
	testkit.MustPanic(t, func() { MustBind[string](b, nil) })

	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: store.Memory}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close(ctx)
	if got := MustBind[string](b, s.SQL); got == "" {
		t.Fatalf("bind returned nothing")
	}
}
