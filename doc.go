// Package hybridcache implements a single-owner, in-memory key-value cache
// with a hybrid LRU/plain eviction policy, optional entry bounds (max keys)
// and lazy time-to-live expiry (max age).
//
// Recency is tracked in a slot log with virtual offset indexing: removing the
// front bumps an offset instead of shifting the array, and removing from the
// middle leaves a tombstone that an amortized garbage collector compacts away
// once tombstones outnumber live slots 2:1.
//
// The hybrid contract: a read of a key in the older half of the live entries
// refreshes its recency (strict LRU), while a read in the newer half returns
// with zero bookkeeping. Hot keys therefore cost O(1) per hit with no slot
// churn, and the global least-recently-used key is still promoted on every
// visit so nothing starves. Writes always count as use.
//
// Concurrency: the cache is strictly single-owner and does no internal
// locking. Multi-actor access is expected to be serialized externally, one
// call at a time. Compound sequences that must not interleave with other
// actors are submitted as a pipeline via Apply, which runs its operations
// back-to-back with no yield points.
//
// The full cache state (slot log with numeric expiry instants, offsets,
// tombstones, and policy settings) serializes to an opaque blob via Snapshot
// and reconstructs exactly via Restore or FromSnapshot; the snapstore
// subpackage moves such blobs between processes.
package hybridcache
