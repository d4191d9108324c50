package hybridcache

import (
	"math"
	"time"

	"github.com/sharedmem/hybridcache/internal/seq"
	"github.com/sharedmem/hybridcache/internal/wire"
)

// Snapshot packs the full cache state into an opaque blob: the slot log with
// tombstones and numeric expiry instants, BeginOffset, the garbage count, and
// both policy settings. Values are encoded with the configured codec.
func (c *cache[V]) Snapshot() ([]byte, error) {
	if c.codec == nil {
		return nil, ErrNoCodec
	}

	slots := c.order.Slots()
	out := make([]wire.Slot, 0, len(slots))
	for _, sl := range slots {
		if sl.Dead {
			out = append(out, wire.Slot{})
			continue
		}
		payload, err := c.codec.Encode(c.data[sl.Key])
		if err != nil {
			return nil, &SnapshotError{Key: sl.Key, Err: err}
		}
		out = append(out, wire.Slot{
			Live:      true,
			Key:       sl.Key,
			ExpiresAt: sl.ExpiresAt,
			Payload:   payload,
		})
	}

	return wire.Encode(wire.Snapshot{
		MaxKeys:   uint64(c.maxKeys),
		MaxAge:    int64(c.maxAge),
		MaxAgeSet: c.maxAgeSet,
		Begin:     c.order.Begin(),
		Garbage:   c.order.Garbage(),
		Slots:     out,
	}), nil
}

// Restore replaces the cache contents with a snapshot blob. Expiry instants
// are taken verbatim from the blob, never re-derived, so expiry behavior is
// identical on both sides of a process boundary given the same clock. On any
// error the cache is left untouched.
func (c *cache[V]) Restore(blob []byte) error {
	if c.codec == nil {
		return ErrNoCodec
	}
	snap, err := wire.Decode(blob)
	if err != nil {
		return err
	}

	data := make(map[string]V, len(snap.Slots))
	slots := make([]seq.Slot, len(snap.Slots))
	for i, ws := range snap.Slots {
		if !ws.Live {
			slots[i] = seq.Slot{Dead: true}
			continue
		}
		v, err := c.codec.Decode(ws.Payload)
		if err != nil {
			return &SnapshotError{Key: ws.Key, Err: err}
		}
		data[ws.Key] = v
		slots[i] = seq.Slot{Key: ws.Key, ExpiresAt: ws.ExpiresAt}
	}

	if !c.order.Restore(slots, snap.Begin) {
		return ErrCorruptSnapshot
	}
	c.data = data
	if snap.MaxKeys > math.MaxInt {
		// A bound no slice or map can reach; coerce to unbounded rather
		// than let the int conversion wrap negative.
		c.maxKeys = 0
	} else {
		c.maxKeys = int(snap.MaxKeys)
	}
	c.maxAge = time.Duration(snap.MaxAge)
	c.maxAgeSet = snap.MaxAgeSet

	c.log.Debug("snapshot restored", Fields{"entries": len(data), "slots": len(slots)})
	c.hooks.SnapshotRestored(len(data))
	return nil
}
