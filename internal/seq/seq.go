// Package seq maintains the recency order of cache keys as an append-friendly
// slot log with virtual offset indexing.
//
// The front of the log is the least-recently-promoted key (the eviction
// candidate), the back is the most-recently-promoted. Removing a key from the
// middle leaves a tombstone instead of shifting the array; removals at either
// end pop physically and consume any tombstones they expose. Popping the front
// bumps BeginOffset so that positions stored in the index stay valid without
// an O(n) rewrite.
package seq

const (
	// beginLimit is the BeginOffset ceiling. A long-lived sequence that keeps
	// cycling its front would eventually push absolute positions toward int
	// overflow; callers must compact when NeedsReset reports true.
	beginLimit = int64(1) << 31
)

// Slot is one record of the log. A dead slot is a tombstone: the key has been
// removed (or moved to the tail) and the record waits for compaction.
type Slot struct {
	Key       string
	ExpiresAt int64 // unix nanoseconds; 0 means no expiry
	Dead      bool
}

// Sequence is the ordered key log plus its key -> absolute-position index.
// It is not safe for concurrent use; the owning cache serializes access.
type Sequence struct {
	slots   []Slot
	index   map[string]int64 // key -> BeginOffset + slice index
	begin   int64            // BeginOffset
	garbage int64            // live tombstone count
}

// New returns an empty sequence sized for capacity entries.
func New(capacity int) *Sequence {
	if capacity < 0 {
		capacity = 0
	}
	return &Sequence{
		slots: make([]Slot, 0, capacity),
		index: make(map[string]int64, capacity),
	}
}

// Len returns the number of live keys.
func (s *Sequence) Len() int { return len(s.index) }

// SlotLen returns the physical slot count, tombstones included.
func (s *Sequence) SlotLen() int { return len(s.slots) }

// Garbage returns the current tombstone count.
func (s *Sequence) Garbage() int64 { return s.garbage }

// Begin returns the current BeginOffset.
func (s *Sequence) Begin() int64 { return s.begin }

// Contains reports whether key has a live slot.
func (s *Sequence) Contains(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Position returns the key's offset from the front of the slot log.
// Position 0 means the key is the globally least-recently-promoted entry.
func (s *Sequence) Position(key string) (int64, bool) {
	p, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return p - s.begin, true
}

// ExpiresAt returns the expiry instant recorded in the key's slot.
func (s *Sequence) ExpiresAt(key string) (int64, bool) {
	p, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.slots[p-s.begin].ExpiresAt, true
}

// Insert appends a fresh slot for a key that must not already be present.
func (s *Sequence) Insert(key string, expiresAt int64) {
	s.slots = append(s.slots, Slot{Key: key, ExpiresAt: expiresAt})
	s.index[key] = s.begin + int64(len(s.slots)) - 1
}

// Promote moves the key's slot to the tail and stamps it with expiresAt.
// At the front the old slot is popped physically (no tombstone); in the middle
// it becomes a tombstone; at the tail only the expiry is rewritten.
// Returns true when a tombstone was left behind, so the caller can check the
// compaction trigger.
func (s *Sequence) Promote(key string, expiresAt int64) bool {
	p, ok := s.index[key]
	if !ok {
		return false
	}
	i := p - s.begin
	if int(i) == len(s.slots)-1 {
		s.slots[i].ExpiresAt = expiresAt
		return false
	}

	tombstoned := false
	if i == 0 {
		s.slots = s.slots[1:]
		s.begin++
		s.consumeFront()
	} else {
		s.slots[i] = Slot{Dead: true}
		s.garbage++
		tombstoned = true
	}

	s.slots = append(s.slots, Slot{Key: key, ExpiresAt: expiresAt})
	s.index[key] = s.begin + int64(len(s.slots)) - 1
	return tombstoned
}

// Remove drops the key's slot. End slots pop physically and any tombstones
// they expose are consumed; a middle slot becomes a tombstone. The second
// return is true when a tombstone was left behind.
func (s *Sequence) Remove(key string) (removed, tombstoned bool) {
	p, ok := s.index[key]
	if !ok {
		return false, false
	}
	delete(s.index, key)

	i := p - s.begin
	switch {
	case i == 0:
		s.slots = s.slots[1:]
		s.begin++
		s.consumeFront()
	case int(i) == len(s.slots)-1:
		s.slots = s.slots[:len(s.slots)-1]
		s.consumeBack()
	default:
		s.slots[i] = Slot{Dead: true}
		s.garbage++
		tombstoned = true
	}
	return true, tombstoned
}

// Front returns the least-recently-promoted live key.
func (s *Sequence) Front() (string, bool) {
	if len(s.slots) == 0 {
		return "", false
	}
	return s.slots[0].Key, true
}

func (s *Sequence) consumeFront() {
	for len(s.slots) > 0 && s.slots[0].Dead {
		s.slots = s.slots[1:]
		s.begin++
		s.garbage--
	}
}

func (s *Sequence) consumeBack() {
	for len(s.slots) > 0 && s.slots[len(s.slots)-1].Dead {
		s.slots = s.slots[:len(s.slots)-1]
		s.garbage--
	}
}

// NeedsCompact reports whether tombstone density crossed the 2:3 threshold.
func (s *Sequence) NeedsCompact() bool {
	return s.garbage > 0 && float64(s.garbage) > 0.667*float64(len(s.slots))
}

// NeedsReset reports whether BeginOffset is close enough to overflow that the
// caller must compact now.
func (s *Sequence) NeedsReset() bool { return s.begin >= beginLimit }

// Compact rebuilds the log with tombstones removed and BeginOffset reset.
// When drop is non-nil it is consulted per live slot; slots it rejects are
// removed from the log and the index as well (the caller owns dropping the
// associated values). Returns the number of live slots retained.
func (s *Sequence) Compact(drop func(key string, expiresAt int64) bool) int {
	live := make([]Slot, 0, len(s.index))
	idx := make(map[string]int64, len(s.index))
	for _, sl := range s.slots {
		if sl.Dead {
			continue
		}
		if drop != nil && drop(sl.Key, sl.ExpiresAt) {
			continue
		}
		idx[sl.Key] = int64(len(live))
		live = append(live, sl)
	}
	s.slots = live
	s.index = idx
	s.begin = 0
	s.garbage = 0
	return len(live)
}

// RewriteExpiry replaces every live slot's expiry with fn(key, current).
func (s *Sequence) RewriteExpiry(fn func(key string, expiresAt int64) int64) {
	for i := range s.slots {
		if s.slots[i].Dead {
			continue
		}
		s.slots[i].ExpiresAt = fn(s.slots[i].Key, s.slots[i].ExpiresAt)
	}
}

// Keys returns the live keys front-to-back.
func (s *Sequence) Keys() []string {
	out := make([]string, 0, len(s.index))
	for _, sl := range s.slots {
		if !sl.Dead {
			out = append(out, sl.Key)
		}
	}
	return out
}

// Walk visits live slots front-to-back until fn returns false.
func (s *Sequence) Walk(fn func(key string, expiresAt int64) bool) {
	for _, sl := range s.slots {
		if sl.Dead {
			continue
		}
		if !fn(sl.Key, sl.ExpiresAt) {
			return
		}
	}
}

// Slots returns the raw slot log, tombstones included, for serialization.
// The returned slice aliases internal state and must not be mutated.
func (s *Sequence) Slots() []Slot { return s.slots }

// Reset empties the sequence and zeroes BeginOffset and the garbage count.
func (s *Sequence) Reset() {
	s.slots = s.slots[:0]
	s.index = make(map[string]int64)
	s.begin = 0
	s.garbage = 0
}

// Restore replaces the sequence state with a deserialized slot log. The index
// is rebuilt from the slots; garbage is recounted. Returns false when the slot
// log is inconsistent (duplicate or empty live keys).
func (s *Sequence) Restore(slots []Slot, begin int64) bool {
	idx := make(map[string]int64, len(slots))
	var garbage int64
	for i, sl := range slots {
		if sl.Dead {
			garbage++
			continue
		}
		if sl.Key == "" {
			return false
		}
		if _, dup := idx[sl.Key]; dup {
			return false
		}
		idx[sl.Key] = begin + int64(i)
	}
	s.slots = slots
	s.index = idx
	s.begin = begin
	s.garbage = garbage
	return true
}

// Grow preallocates room for n additional live entries.
func (s *Sequence) Grow(n int) {
	if n <= 0 {
		return
	}
	if free := cap(s.slots) - len(s.slots); free < n {
		grown := make([]Slot, len(s.slots), len(s.slots)+n)
		copy(grown, s.slots)
		s.slots = grown
	}
}
