package lead

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"scholarship-workers/internal/models"
)

const IntakeKey = "leads:intake"

// Intake is the hand-off buffer between the form and the admissions team.
type Intake interface {
	Push(ctx context.Context, l models.Lead) error
}

// RedisIntake appends leads to a redis list. The list expires ttl after the
// last push so unclaimed leads do not linger.
type RedisIntake struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisIntake(client redis.Cmdable, ttl time.Duration) *RedisIntake {
	return &RedisIntake{client: client, ttl: ttl}
}

func (r *RedisIntake) Push(ctx context.Context, l models.Lead) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, IntakeKey, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, IntakeKey, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Pending returns the buffered leads, oldest first.
func (r *RedisIntake) Pending(ctx context.Context) ([]models.Lead, error) {
	raw, err := r.client.LRange(ctx, IntakeKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.Lead, 0, len(raw))
	for _, item := range raw {
		var l models.Lead
		if err := json.Unmarshal([]byte(item), &l); err != nil {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
