// Package sloghooks logs hybridcache hook events through log/slog, with
// optional sampling for the hot eviction path and key redaction.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/sharedmem/hybridcache"
)

type Options struct {
	// EvictEvery samples eviction logs to avoid floods; 0/1 = log all.
	EvictEvery uint64
	// Redact replaces keys before logging. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictCtr atomic.Uint64
}

var _ hybridcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryEvicted(key, reason string) {
	if h.l == nil || !sample(h.opts.EvictEvery, &h.evictCtr) {
		return
	}
	h.l.Debug("hybridcache.entry_evicted",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) Compacted(before, retained int) {
	if h.l == nil {
		return
	}
	h.l.Debug("hybridcache.compacted",
		"before", before,
		"retained", retained)
}

func (h *Hooks) OverflowGuard(beginOffset int64) {
	if h.l == nil {
		return
	}
	h.l.Warn("hybridcache.overflow_guard",
		"begin_offset", beginOffset)
}

func (h *Hooks) SnapshotRestored(entries int) {
	if h.l == nil {
		return
	}
	h.l.Info("hybridcache.snapshot_restored",
		"entries", entries)
}
