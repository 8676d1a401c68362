// Package completion waits for a fixed number of independent operations.
//
// AfterN is the low-level fan-in counter. Group builds a structured join on top of
// errgroup: one task per operation, the first failure is returned from Wait, and a
// completion callback fires once every expected task has finished.
package completion

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// AfterN returns a signal function. After it has been called n times, fn runs
// exactly once with the first non-nil error passed to any signal. Signals after
// that are ignored. With n <= 0, fn runs immediately.
func AfterN(n int, fn func(error)) func(error) {
	if n <= 0 {
		fn(nil)
		return func(error) {}
	}

	var (
		mu        sync.Mutex
		remaining = n
		first     error
		fired     bool
	)
	return func(err error) {
		mu.Lock()
		if fired {
			mu.Unlock()
			return
		}
		if err != nil && first == nil {
			first = err
		}
		remaining--
		if remaining > 0 {
			mu.Unlock()
			return
		}
		fired = true
		result := first
		mu.Unlock()
		fn(result)
	}
}

// Group runs a known number of tasks and joins them.
type Group struct {
	eg       *errgroup.Group
	expected int
	spawned  atomic.Int64
	signal   func(error)
}

// NewGroup creates a group expecting exactly expected tasks. limit > 0 bounds the
// number of concurrently running tasks. onDone may be nil. The returned context is
// canceled when the first task fails or the parent is canceled.
func NewGroup(ctx context.Context, expected, limit int, onDone func(error)) (*Group, context.Context) {
	eg, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	if onDone == nil {
		onDone = func(error) {}
	}
	g := &Group{eg: eg, expected: expected}
	if expected > 0 {
		g.signal = AfterN(expected, onDone)
	} else {
		g.signal = func(error) {}
		onDone(nil)
	}
	return g, gctx
}

// Go starts one task. Every task signals completion, success or not.
func (g *Group) Go(task func() error) {
	g.spawned.Add(1)
	g.eg.Go(func() error {
		err := task()
		g.signal(err)
		return err
	})
}

// Wait blocks until every started task returns. It reports the first task error,
// or an internal error when the number of started tasks differs from the expected
// count (in which case the completion callback may never have fired).
func (g *Group) Wait() error {
	if err := g.eg.Wait(); err != nil {
		return err
	}
	if spawned := int(g.spawned.Load()); spawned != g.expected {
		return ferrors.InternalError("completion count mismatch").
			WithContext("expected", g.expected).
			WithContext("spawned", spawned).
			Build()
	}
	return nil
}

// Expected returns the number of tasks the group waits for.
func (g *Group) Expected() int {
	return g.expected
}
