// Package snapstore moves serialized cache snapshots between processes.
//
// A Store holds opaque blobs produced by hybridcache's Snapshot under a
// caller-chosen name; the receiving process loads the blob and reconstructs
// the cache with FromSnapshot. Stores never inspect blob contents.
package snapstore

import (
	"context"
	"time"
)

// Store is a named blob store with optional per-blob TTL.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the blob under name. ttl <= 0 means the blob never expires.
	Save(ctx context.Context, name string, blob []byte, ttl time.Duration) error

	// Load returns (blob, true, nil) on hit and (nil, false, nil) on miss.
	Load(ctx context.Context, name string) ([]byte, bool, error)

	// Delete removes a blob (best-effort; deleting a missing name is not an
	// error).
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
