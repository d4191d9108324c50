package snapstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the handful of UniversalClient methods the store
// calls; anything else panics through the embedded nil interface.
type fakeRedis struct {
	redis.UniversalClient
	data   map[string]string
	ttls   map[string]time.Duration
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestNewRedisRequiresClient(t *testing.T) {
	if _, err := NewRedis(RedisConfig{}); err != ErrNilClient {
		t.Fatalf("err = %v", err)
	}
}

func TestRedisContract(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s, err := NewRedis(RedisConfig{Client: rdb, Namespace: "ns"})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}

	if _, ok, err := s.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss expected, ok=%v err=%v", ok, err)
	}

	blob := []byte{1, 2, 3}
	if err := s.Save(ctx, "snap", blob, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := rdb.data["snap:ns:snap"]; !ok {
		t.Fatalf("namespaced key missing, stored keys: %v", rdb.data)
	}
	if rdb.ttls["snap:ns:snap"] != time.Minute {
		t.Fatalf("ttl = %v", rdb.ttls["snap:ns:snap"])
	}

	got, ok, err := s.Load(ctx, "snap")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob = %v", got)
	}

	if err := s.Delete(ctx, "snap"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Load(ctx, "snap"); ok {
		t.Fatal("blob survived delete")
	}
	if err := s.Delete(ctx, "snap"); err != nil {
		t.Fatalf("deleting a missing name: %v", err)
	}
}

func TestRedisSaveNoTTL(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s, _ := NewRedis(RedisConfig{Client: rdb})

	if err := s.Save(ctx, "snap", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Negative TTL coerces to "never expires" rather than an immediate drop.
	if rdb.ttls["snap::snap"] != 0 {
		t.Fatalf("ttl = %v", rdb.ttls["snap::snap"])
	}
}

func TestRedisCloseOwnership(t *testing.T) {
	ctx := context.Background()

	shared := newFakeRedis()
	s, _ := NewRedis(RedisConfig{Client: shared})
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if shared.closed {
		t.Fatal("closed a client the store does not own")
	}

	owned := newFakeRedis()
	s, _ = NewRedis(RedisConfig{Client: owned, CloseClient: true})
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !owned.closed {
		t.Fatal("owned client left open")
	}
}
