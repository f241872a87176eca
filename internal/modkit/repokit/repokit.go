// Package repokit binds repositories to the catalog database and checks the
// backends at startup
package repokit

import (
	"context"
	"fmt"
	"time"

	"devstreams/internal/platform/store"
)

// Queryer is what a repository runs statements against
type Queryer = store.DB

// Binder builds a repository over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind without a database")
	}
	return b.Bind(q)
}

// GuardTimeout bounds MustGuard when ctx has no deadline
const GuardTimeout = 5 * time.Second

// Guarder reports whether the configured backends answer
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard panics unless every backend of g answers within GuardTimeout or
// the deadline already on ctx
func MustGuard(ctx context.Context, g Guarder) {
	if g == nil {
		panic("repokit: guard without a store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("backends not ready: %w", err))
	}
}
