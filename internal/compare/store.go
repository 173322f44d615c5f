package compare

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"scholarship-workers/internal/models"
)

const keyPrefix = "compare:"

// Store persists compare lists per session.
type Store interface {
	Load(ctx context.Context, session string) ([]models.CompareItem, error)
	Save(ctx context.Context, session string, items []models.CompareItem) error
	Delete(ctx context.Context, session string) error
}

// RedisStore keeps each list as a JSON array under compare:<session>. Every
// write refreshes the TTL.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func Key(session string) string {
	return keyPrefix + session
}

// Load returns an empty list for unknown sessions. An unreadable entry is
// treated as empty too and gets overwritten on the next save.
func (s *RedisStore) Load(ctx context.Context, session string) ([]models.CompareItem, error) {
	raw, err := s.client.Get(ctx, Key(session)).Bytes()
	if err == redis.Nil {
		return []models.CompareItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CompareItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.CompareItem{}, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, session string, items []models.CompareItem) error {
	if len(items) == 0 {
		return s.Delete(ctx, session)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key(session), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, session string) error {
	return s.client.Del(ctx, Key(session)).Err()
}
