package hybridcache

import (
	"time"

	cd "github.com/sharedmem/hybridcache/codec"
)

// Pair is one (key, value) enumeration result.
type Pair[V any] struct {
	Key   string
	Value V
}

// Cache is the single-owner hybrid LRU/plain cache.
//
// Every method assumes exclusive access for its full duration; nothing
// blocks, suspends, or locks internally. A miss (absent or expired key) is
// not an error, and an empty key is a structural misuse that degrades to a
// no-op / absent result.
type Cache[V any] interface {
	// Get returns the value for key. A hit in the older half of the live
	// entries (or on the single least-recently-used key) refreshes recency;
	// a hit in the newer half does not.
	Get(key string) (V, bool)

	// Peek returns the value without touching recency. Expired entries are
	// still discovered and dropped.
	Peek(key string) (V, bool)

	// Set stores or replaces the value. A write always refreshes recency and
	// expiry. Inserting past the max-keys bound evicts from the front until
	// the bound holds again.
	Set(key string, value V)

	// Delete removes the entry and returns the removed value.
	Delete(key string) (V, bool)

	// Exists reports membership under the same lazy-expiry rule as Get,
	// without promoting.
	Exists(key string) bool

	// Clear resets the cache to empty.
	Clear()

	// Len returns the live entry count.
	Len() int

	// Keys, Values and Pairs enumerate live entries from least- to
	// most-recently promoted. When expiry is active, leading expired slots
	// are pruned opportunistically first.
	Keys() []string
	Values() []V
	Pairs() []Pair[V]

	// Iter returns a finite, frozen-at-call-time, non-restartable iterator.
	// Entries inserted after Iter are invisible to it; entries deleted or
	// expired mid-iteration surface as absent for their key.
	Iter() *Iterator[V]

	// Purge compacts the slot log, reclaiming tombstones and (when expiry is
	// active) already-expired entries. Returns the number of slots reclaimed.
	Purge() int

	// MaxAge reports the TTL policy; the bool is false when entries never
	// expire. SetMaxAge reconfigures it from a permissive spec ("90s",
	// "1.5h", "now", "never") and returns the applied policy.
	MaxAge() (time.Duration, bool)
	SetMaxAge(spec string) (time.Duration, bool)

	// MaxKeys reports the entry bound (0 = unbounded). SetMaxKeys
	// reconfigures it from a permissive spec ("500", "4K", "unlimited");
	// shrinking evicts from the front immediately.
	MaxKeys() int
	SetMaxKeys(spec string) int

	// Preallocate sizes internal structures for n entries. Purely a
	// performance hint; intended to be called once before first use.
	Preallocate(n int)

	// Apply runs a pipeline of operations back-to-back with no yield points
	// in between, one result per operation.
	Apply(ops []Op[V]) []Result[V]

	// Snapshot packs the full cache state (slot log with numeric expiry
	// instants, offsets, tombstones, policy settings) into an opaque blob.
	// Restore reconstructs that state exactly, replacing current contents.
	// Both require Options.Codec.
	Snapshot() ([]byte, error)
	Restore(blob []byte) error
}

// Options tune a new cache. All fields are optional; malformed MaxKeys/MaxAge
// specs are coerced to the nearest valid policy, never rejected.
type Options[V any] struct {
	MaxKeys string // entry bound: "500", "4K", "2M"; ""/"unlimited" => unbounded
	MaxAge  string // TTL: "90s", "10m", "1.5h", "2d", "now"; ""/"never" => no expiry

	InitialCapacity int // preallocation hint for maps and the slot log

	Codec  cd.Codec[V]      // required only for Snapshot/Restore
	Logger Logger           // nil => NopLogger
	Hooks  Hooks            // nil => NopHooks
	Clock  func() time.Time // nil => time.Now; test hook
}

// New constructs an empty cache.
func New[V any](opts Options[V]) Cache[V] {
	return newCache[V](opts)
}

// FromSnapshot constructs a cache and loads a snapshot blob into it.
// Policy settings travel inside the blob and override opts.MaxKeys/MaxAge.
func FromSnapshot[V any](blob []byte, opts Options[V]) (Cache[V], error) {
	c := newCache[V](opts)
	if err := c.Restore(blob); err != nil {
		return nil, err
	}
	return c, nil
}
