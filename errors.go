package hybridcache

import (
	"errors"
	"fmt"

	"github.com/sharedmem/hybridcache/internal/wire"
)

var (
	// ErrNoCodec is returned by Snapshot/Restore when Options.Codec was not set.
	ErrNoCodec = errors.New("hybridcache: codec is required for snapshots")

	// ErrCorruptSnapshot is returned by Restore when the blob fails framing
	// validation. The cache state is left untouched.
	ErrCorruptSnapshot = wire.ErrCorrupt
)

// SnapshotError reports a value that the configured codec could not encode or
// decode while packing or loading a snapshot.
type SnapshotError struct {
	Key string
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("hybridcache: snapshot value for %q: %v", e.Key, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }
