package hybridcache

import (
	"time"

	cd "github.com/sharedmem/hybridcache/codec"
	"github.com/sharedmem/hybridcache/internal/seq"
	"github.com/sharedmem/hybridcache/internal/util"
)

type cache[V any] struct {
	data  map[string]V
	order *seq.Sequence

	maxKeys   int           // 0 = unbounded
	maxAge    time.Duration // meaningful only when maxAgeSet
	maxAgeSet bool

	codec cd.Codec[V]
	log   Logger
	hooks Hooks
	now   func() time.Time
}

func newCache[V any](opts Options[V]) *cache[V] {
	capacity := opts.InitialCapacity
	if capacity < 0 {
		capacity = 0
	}

	c := &cache[V]{
		data:  make(map[string]V, capacity),
		order: seq.New(capacity),
		codec: opts.Codec,
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.now = opts.Clock
	if c.now == nil {
		c.now = time.Now
	}

	c.maxKeys = util.ParseMaxKeys(opts.MaxKeys)
	c.maxAge, c.maxAgeSet = util.ParseMaxAge(opts.MaxAge)
	return c
}

// expiryFor stamps a slot being written or promoted at now.
func (c *cache[V]) expiryFor(now time.Time) int64 {
	if !c.maxAgeSet {
		return 0
	}
	return now.Add(c.maxAge).UnixNano()
}

func (c *cache[V]) expired(expiresAt int64, now time.Time) bool {
	return c.maxAgeSet && expiresAt > 0 && now.UnixNano() >= expiresAt
}

func (c *cache[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	pos, ok := c.order.Position(key)
	if !ok {
		return zero, false
	}
	now := c.now()
	if exp, _ := c.order.ExpiresAt(key); c.expired(exp, now) {
		c.evict(key, EvictExpired)
		return zero, false
	}
	v := c.data[key]

	// Hybrid promotion: the global LRU key is always refreshed; a key in the
	// older half of the live entries gets LRU treatment; the newer half is a
	// plain cache hit with zero bookkeeping. The slot position is corrected
	// by the tombstone count, so the split is a heuristic that shifts as the
	// log fills and compacts.
	live := int64(len(c.data))
	if pos == 0 || 2*(pos-c.order.Garbage()) < live {
		if c.order.Promote(key, c.expiryFor(now)) {
			c.maybeCompact()
		}
		c.checkOverflow()
	}
	return v, true
}

func (c *cache[V]) Peek(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	exp, ok := c.order.ExpiresAt(key)
	if !ok {
		return zero, false
	}
	if c.expired(exp, c.now()) {
		c.evict(key, EvictExpired)
		return zero, false
	}
	return c.data[key], true
}

func (c *cache[V]) Set(key string, value V) {
	if key == "" {
		return
	}
	now := c.now()

	if c.order.Contains(key) {
		// A write always counts as use, unconditionally.
		c.data[key] = value
		if c.order.Promote(key, c.expiryFor(now)) {
			c.maybeCompact()
		}
		c.checkOverflow()
		return
	}

	c.data[key] = value
	c.order.Insert(key, c.expiryFor(now))
	c.enforceMaxKeys()
}

func (c *cache[V]) Delete(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	v, ok := c.data[key]
	if !ok {
		return zero, false
	}
	delete(c.data, key)
	if _, tombstoned := c.order.Remove(key); tombstoned {
		c.maybeCompact()
	}
	c.checkOverflow()
	return v, true
}

func (c *cache[V]) Exists(key string) bool {
	if key == "" {
		return false
	}
	exp, ok := c.order.ExpiresAt(key)
	if !ok {
		return false
	}
	if c.expired(exp, c.now()) {
		c.evict(key, EvictExpired)
		return false
	}
	return true
}

func (c *cache[V]) Clear() {
	c.data = make(map[string]V)
	c.order.Reset()
}

func (c *cache[V]) Len() int {
	c.pruneHead()
	return len(c.data)
}

func (c *cache[V]) Keys() []string {
	c.pruneHead()
	return c.order.Keys()
}

func (c *cache[V]) Values() []V {
	c.pruneHead()
	out := make([]V, 0, len(c.data))
	c.order.Walk(func(key string, _ int64) bool {
		out = append(out, c.data[key])
		return true
	})
	return out
}

func (c *cache[V]) Pairs() []Pair[V] {
	c.pruneHead()
	out := make([]Pair[V], 0, len(c.data))
	c.order.Walk(func(key string, _ int64) bool {
		out = append(out, Pair[V]{Key: key, Value: c.data[key]})
		return true
	})
	return out
}

func (c *cache[V]) Purge() int {
	before := c.order.SlotLen()
	now := c.now()
	retained := c.order.Compact(func(key string, expiresAt int64) bool {
		if c.expired(expiresAt, now) {
			delete(c.data, key)
			c.hooks.EntryEvicted(key, EvictExpired)
			return true
		}
		return false
	})
	reclaimed := before - retained
	if reclaimed > 0 {
		c.log.Debug("slot log compacted", Fields{"before": before, "retained": retained})
		c.hooks.Compacted(before, retained)
	}
	return reclaimed
}

func (c *cache[V]) MaxAge() (time.Duration, bool) { return c.maxAge, c.maxAgeSet }

func (c *cache[V]) SetMaxAge(spec string) (time.Duration, bool) {
	// Settle under the old policy first so the rewrite below only ever sees
	// live, unexpired slots.
	c.Purge()

	oldTTL, oldSet := c.maxAge, c.maxAgeSet
	c.maxAge, c.maxAgeSet = util.ParseMaxAge(spec)

	switch {
	case c.maxAgeSet && !oldSet:
		// Entries carried no expiry before: reset every slot to a full TTL.
		at := c.now().Add(c.maxAge).UnixNano()
		c.order.RewriteExpiry(func(string, int64) int64 { return at })
	case c.maxAgeSet && oldSet:
		delta := int64(c.maxAge - oldTTL)
		fallback := c.now().Add(c.maxAge).UnixNano()
		c.order.RewriteExpiry(func(_ string, expiresAt int64) int64 {
			if expiresAt == 0 {
				return fallback
			}
			return expiresAt + delta
		})
	case !c.maxAgeSet && oldSet:
		c.order.RewriteExpiry(func(string, int64) int64 { return 0 })
	}
	return c.maxAge, c.maxAgeSet
}

func (c *cache[V]) MaxKeys() int { return c.maxKeys }

func (c *cache[V]) SetMaxKeys(spec string) int {
	c.maxKeys = util.ParseMaxKeys(spec)
	c.enforceMaxKeys()
	return c.maxKeys
}

func (c *cache[V]) Preallocate(n int) {
	if n <= 0 {
		return
	}
	if len(c.data) == 0 {
		c.data = make(map[string]V, n)
	}
	c.order.Grow(n)
}

// evict drops an entry on the cache's own initiative (bound or expiry).
func (c *cache[V]) evict(key, reason string) {
	if _, ok := c.data[key]; !ok {
		return
	}
	delete(c.data, key)
	_, tombstoned := c.order.Remove(key)
	c.hooks.EntryEvicted(key, reason)
	if tombstoned {
		c.maybeCompact()
	}
	c.checkOverflow()
}

// enforceMaxKeys evicts from the front until the bound holds. Front removals
// pop physically, so this never grows the garbage count.
func (c *cache[V]) enforceMaxKeys() {
	if c.maxKeys <= 0 {
		return
	}
	for len(c.data) > c.maxKeys {
		front, ok := c.order.Front()
		if !ok {
			return
		}
		c.evict(front, EvictMaxKeys)
	}
}

// pruneHead discards leading expired slots before a read-only enumeration.
// This is the cheap approximate variant: it assumes stale entries cluster at
// the front, which holds only until promotions rewrite expiries mid-log.
// Purge performs the exact sweep.
func (c *cache[V]) pruneHead() {
	if !c.maxAgeSet {
		return
	}
	now := c.now()
	for {
		front, ok := c.order.Front()
		if !ok {
			return
		}
		exp, _ := c.order.ExpiresAt(front)
		if !c.expired(exp, now) {
			return
		}
		c.evict(front, EvictExpired)
	}
}

func (c *cache[V]) maybeCompact() {
	if c.order.NeedsCompact() {
		c.Purge()
	}
}

// checkOverflow forces a full compaction before BeginOffset can push absolute
// positions toward integer overflow in long-lived caches. Every path that pops
// the front of the slot log (promotion, deletion, eviction) runs it.
func (c *cache[V]) checkOverflow() {
	if c.order.NeedsReset() {
		begin := c.order.Begin()
		c.log.Warn("begin offset ceiling reached; forcing purge", Fields{"begin": begin})
		c.hooks.OverflowGuard(begin)
		c.Purge()
	}
}
