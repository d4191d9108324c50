package snapstore

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	blob      []byte
	expiresAt time.Time // zero => no TTL
}

// Local keeps blobs in-process. Useful for tests and for handing state
// between owners inside one process; expired blobs are dropped lazily on
// Load.
type Local struct {
	mu    sync.RWMutex
	blobs map[string]localEntry
}

var _ Store = (*Local)(nil)

func NewLocal() *Local {
	return &Local{blobs: make(map[string]localEntry)}
}

func (s *Local) Save(_ context.Context, name string, blob []byte, ttl time.Duration) error {
	cp := make([]byte, len(blob))
	copy(cp, blob)

	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.blobs[name] = localEntry{blob: cp, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func (s *Local) Load(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, still := s.blobs[name]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.blobs, name)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	cp := make([]byte, len(e.blob))
	copy(cp, e.blob)
	return cp, true, nil
}

func (s *Local) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	delete(s.blobs, name)
	s.mu.Unlock()
	return nil
}

func (s *Local) Close(context.Context) error { return nil }
