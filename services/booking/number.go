package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NumberGenerator produces human-readable booking numbers. Numbers are
// monotonically distinguishable within a day; they are not required to be
// unguessable.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// RedisNumberGenerator issues numbers from a per-day Redis counter, e.g.
// "LS-20260829-00042".
type RedisNumberGenerator struct {
	client *redis.Client
	prefix string
}

func NewRedisNumberGenerator(client *redis.Client, prefix string) *RedisNumberGenerator {
	if prefix == "" {
		prefix = "LS"
	}
	return &RedisNumberGenerator{client: client, prefix: prefix}
}

func (g *RedisNumberGenerator) Next(ctx context.Context) (string, error) {
	day := time.Now().Format("20060102")
	key := fmt.Sprintf("booking:seq:%s", day)

	seq, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment booking counter: %w", err)
	}
	if seq == 1 {
		// First booking of the day; let the counter expire after 48h.
		g.client.Expire(ctx, key, 48*time.Hour)
	}
	return fmt.Sprintf("%s-%s-%05d", g.prefix, day, seq), nil
}
