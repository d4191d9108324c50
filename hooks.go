package hybridcache

// Eviction reasons passed to Hooks.EntryEvicted.
const (
	EvictMaxKeys = "max_keys"
	EvictExpired = "expired"
)

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the cache calls them
// inline on hot paths. See hooks/async for a buffered fan-out wrapper.
type Hooks interface {
	// An entry was dropped by the cache itself (bound enforcement or lazy
	// expiry), as opposed to an explicit Delete by the caller.
	EntryEvicted(key, reason string)

	// The slot log was compacted. before/retained are physical slot counts.
	Compacted(before, retained int)

	// BeginOffset approached its ceiling and forced a full compaction.
	OverflowGuard(beginOffset int64)

	// A snapshot blob was loaded; entries is the live entry count.
	SnapshotRestored(entries int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) EntryEvicted(string, string) {}
func (NopHooks) Compacted(int, int)          {}
func (NopHooks) OverflowGuard(int64)         {}
func (NopHooks) SnapshotRestored(int)        {}
