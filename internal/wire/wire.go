// Package wire frames a full cache snapshot as an opaque binary blob.
//
// Layout:
//
//	magic(4="HYBC") | ver(1) | flags(1) | maxKeys(u64 be) | maxAge(i64 be ns) |
//	begin(i64 be) | garbage(i64 be) | nslots(u32 be) | slot*
//
//	live slot:      tag(1=1) | keyLen(u16 be) | key | expiresAt(i64 be ns) |
//	                vlen(u32 be) | payload
//	tombstone slot: tag(1=0)
//
// Expiry instants travel as the stored unix-nanosecond values; the decoder
// never re-derives them. Decoding is strict: any framing violation yields
// ErrCorrupt rather than a partial snapshot.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1

	flagMaxAgeSet byte = 1 << 0

	tagTombstone byte = 0
	tagLive      byte = 1
)

var (
	ErrCorrupt = errors.New("hybridcache: corrupt snapshot")
	magic4     = [...]byte{'H', 'Y', 'B', 'C'}
)

// Slot is one serialized slot record. Payload is the codec-encoded value for
// live slots and nil for tombstones.
type Slot struct {
	Live      bool
	Key       string
	ExpiresAt int64
	Payload   []byte
}

// Snapshot is the complete serializable cache state.
type Snapshot struct {
	MaxKeys   uint64
	MaxAge    int64 // nanoseconds; meaningful only when MaxAgeSet
	MaxAgeSet bool
	Begin     int64
	Garbage   int64
	Slots     []Slot
}

// Encode frames a snapshot.
func Encode(s Snapshot) []byte {
	total := 4 + 1 + 1 + 8 + 8 + 8 + 8 + 4
	for _, sl := range s.Slots {
		if !sl.Live {
			total++
			continue
		}
		total += 1 + 2 + len(sl.Key) + 8 + 4 + len(sl.Payload)
	}

	var buf bytes.Buffer
	buf.Grow(total)

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var flags byte
	if s.MaxAgeSet {
		flags |= flagMaxAgeSet
	}
	buf.WriteByte(flags)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint64(u8[:], s.MaxKeys)
	buf.Write(u8[:])
	binary.BigEndian.PutUint64(u8[:], uint64(s.MaxAge))
	buf.Write(u8[:])
	binary.BigEndian.PutUint64(u8[:], uint64(s.Begin))
	buf.Write(u8[:])
	binary.BigEndian.PutUint64(u8[:], uint64(s.Garbage))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(s.Slots)))
	buf.Write(u4[:])

	for _, sl := range s.Slots {
		if !sl.Live {
			buf.WriteByte(tagTombstone)
			continue
		}
		if l := len(sl.Key); l == 0 || l > 0xFFFF {
			panic("hybridcache: invalid key length in snapshot")
		}
		buf.WriteByte(tagLive)

		binary.BigEndian.PutUint16(u2[:], uint16(len(sl.Key)))
		buf.Write(u2[:])
		buf.WriteString(sl.Key)

		binary.BigEndian.PutUint64(u8[:], uint64(sl.ExpiresAt))
		buf.Write(u8[:])

		binary.BigEndian.PutUint32(u4[:], uint32(len(sl.Payload)))
		buf.Write(u4[:])
		buf.Write(sl.Payload)
	}

	return buf.Bytes()
}

// Decode parses a framed snapshot. Trailing bytes are a framing violation.
func Decode(b []byte) (Snapshot, error) {
	const hdr = 4 + 1 + 1 + 8 + 8 + 8 + 8 + 4
	var s Snapshot

	if len(b) < hdr || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return s, ErrCorrupt
	}
	s.MaxAgeSet = b[5]&flagMaxAgeSet != 0

	off := 6
	s.MaxKeys = binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	s.MaxAge = int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	s.Begin = int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	s.Garbage = int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if s.Begin < 0 || s.Garbage < 0 || s.Garbage > int64(n) {
		return Snapshot{}, ErrCorrupt
	}

	slots := make([]Slot, 0, n)
	var tombstones int64
	for i := 0; i < n; i++ {
		if off >= len(b) {
			return Snapshot{}, ErrCorrupt
		}
		tag := b[off]
		off++

		switch tag {
		case tagTombstone:
			slots = append(slots, Slot{})
			tombstones++
		case tagLive:
			if off+2 > len(b) {
				return Snapshot{}, ErrCorrupt
			}
			klen := int(binary.BigEndian.Uint16(b[off : off+2]))
			off += 2
			if klen == 0 || klen > len(b)-off {
				return Snapshot{}, ErrCorrupt
			}
			key := string(b[off : off+klen])
			off += klen

			if off+8 > len(b) {
				return Snapshot{}, ErrCorrupt
			}
			exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
			off += 8

			if off+4 > len(b) {
				return Snapshot{}, ErrCorrupt
			}
			vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
			off += 4
			if vlen < 0 || vlen > len(b)-off {
				return Snapshot{}, ErrCorrupt
			}
			payload := make([]byte, vlen)
			copy(payload, b[off:off+vlen])
			off += vlen

			slots = append(slots, Slot{Live: true, Key: key, ExpiresAt: exp, Payload: payload})
		default:
			return Snapshot{}, ErrCorrupt
		}
	}
	if off != len(b) {
		return Snapshot{}, ErrCorrupt
	}
	if tombstones != s.Garbage {
		return Snapshot{}, ErrCorrupt
	}

	s.Slots = slots
	return s, nil
}
