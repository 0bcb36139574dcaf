package bridge

import (
	"context"
	"sync/atomic"
)

// waiter is one suspended cooperative wait. Its predicate is evaluated on
// every Tick; done closes when the predicate holds. A waiter whose caller
// gave up (context cancelled) is marked abandoned and dropped on the next
// Tick.
type waiter struct {
	pred      func() bool
	done      chan struct{}
	abandoned atomic.Bool
}

// await suspends the calling goroutine until pred holds, re-evaluated
// once per Tick, or until ctx is done. Tick must be driven from another
// goroutine (the engine loop); await never polls on its own.
func (b *native) await(ctx context.Context, pred func() bool) error {
	w := &waiter{pred: pred, done: make(chan struct{})}

	b.waitersMu.Lock()
	b.waiters = append(b.waiters, w)
	b.waitersMu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.abandoned.Store(true)
		return ctx.Err()
	}
}

// Tick implements Bridge. It runs pending waiter predicates and resumes
// the ones that hold. Called once per display frame by the host engine.
func (b *native) Tick() {
	b.waitersMu.Lock()
	defer b.waitersMu.Unlock()

	kept := b.waiters[:0]
	for _, w := range b.waiters {
		if w.abandoned.Load() {
			continue
		}
		if w.pred() {
			close(w.done)
			continue
		}
		kept = append(kept, w)
	}
	b.waiters = kept
}
