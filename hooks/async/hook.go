// Package asynchook decouples hook callbacks from the cache's hot path by
// queueing events to worker goroutines. Events are dropped when the queue is
// full; hooks are telemetry, never control flow.
//
// Note the cache core itself stays single-owner: the workers only run the
// wrapped Hooks implementation, they never touch the cache.
package asynchook

import (
	"sync"

	"github.com/sharedmem/hybridcache"
)

type Hooks struct {
	inner hybridcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ hybridcache.Hooks = (*Hooks)(nil)

func New(inner hybridcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryEvicted(key, reason string) {
	h.try(func() { h.inner.EntryEvicted(key, reason) })
}

func (h *Hooks) Compacted(before, retained int) {
	h.try(func() { h.inner.Compacted(before, retained) })
}

func (h *Hooks) OverflowGuard(begin int64) {
	h.try(func() { h.inner.OverflowGuard(begin) })
}

func (h *Hooks) SnapshotRestored(entries int) {
	h.try(func() { h.inner.SnapshotRestored(entries) })
}
