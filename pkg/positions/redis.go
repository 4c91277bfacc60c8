package positions

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// RedisStore keeps the position map in a single Redis key, for setups where
// positions are shared across machines.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// Load returns the saved position map. A missing key or an unparseable value
// is an empty map; only transport failures surface as errors.
func (s *RedisStore) Load(ctx context.Context) (map[string]model.PersistedEntry, error) {
	data, err := s.client.Get(ctx, StorageKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]model.PersistedEntry{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "load positions")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.Entries == nil {
		return map[string]model.PersistedEntry{}, nil
	}
	return snap.Entries, nil
}

// Save replaces the position map. No TTL: positions live until cleared.
func (s *RedisStore) Save(ctx context.Context, entries map[string]model.PersistedEntry) error {
	data, err := json.Marshal(newSnapshot(entries))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, StorageKey, data, 0).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "save positions")
	}
	return nil
}

// Clear removes the stored position map.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, StorageKey).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "clear positions")
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }
