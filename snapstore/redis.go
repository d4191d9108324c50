package snapstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("snapstore: nil redis client")

// Redis stores blobs in Redis so snapshots survive restarts and cross
// machine boundaries. Keys are namespaced "snap:<ns>:<name>".
type Redis struct {
	rdb         redis.UniversalClient
	ns          string
	closeClient bool
}

var _ Store = (*Redis)(nil)

type RedisConfig struct {
	Client      redis.UniversalClient
	Namespace   string // logical namespace to avoid collisions
	CloseClient bool   // set true only if this store exclusively owns the client
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, ns: cfg.Namespace, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) key(name string) string { return "snap:" + s.ns + ":" + name }

func (s *Redis) Save(ctx context.Context, name string, blob []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // no expiry
	}
	return s.rdb.Set(ctx, s.key(name), blob, ttl).Err()
}

func (s *Redis) Load(ctx context.Context, name string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Redis) Delete(ctx context.Context, name string) error {
	return s.rdb.Del(ctx, s.key(name)).Err()
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
	}
	return nil
}
