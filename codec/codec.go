// Package codec serializes cache values for snapshot blobs.
//
// The cache holds values of type V in memory untouched; a Codec is only
// consulted when the full cache state is packed for cross-process transfer
// and when a snapshot is loaded back.
package codec

// Codec encodes/decodes values V to []byte inside snapshot slot records.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
