package slotlock

import (
	"context"
	"fmt"
	"time"

	"slotserve/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the key only when the stored token matches, as a
// single atomic step on the Redis side.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLockTable implements the lock table on Redis so multiple replicas share
// one key space. SET NX with a TTL gives the atomic check-then-set; expiry is
// handled by Redis itself. The slot fields are all encoded in the key, so the
// value is just the owner token.
type RedisLockTable struct {
	client *redis.Client
}

// NewRedisLockTable builds a lock table over the given Redis client.
func NewRedisLockTable(client *redis.Client) *RedisLockTable {
	return &RedisLockTable{client: client}
}

// Acquire takes the slot via SET NX. A held key returns ok=false.
func (t *RedisLockTable) Acquire(ctx context.Context, key models.SlotKey, ttl time.Duration) (string, bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	token := uuid.New().String()
	ok, err := t.client.SetNX(ctx, key.String(), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("slot lock acquire failed: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes the key only if the stored token matches.
func (t *RedisLockTable) Release(ctx context.Context, key models.SlotKey, token string) (bool, error) {
	res, err := releaseScript.Run(ctx, t.client, []string{key.String()}, token).Int64()
	if err != nil {
		return false, fmt.Errorf("slot lock release failed: %w", err)
	}
	return res == 1, nil
}

// IsValid reports whether a live entry exists for the key.
func (t *RedisLockTable) IsValid(ctx context.Context, key models.SlotKey) (bool, error) {
	n, err := t.client.Exists(ctx, key.String()).Result()
	if err != nil {
		return false, fmt.Errorf("slot lock status check failed: %w", err)
	}
	return n == 1, nil
}

// SweepExpired is a no-op for the Redis backend: keys are created with a TTL
// and Redis drops them on expiry.
func (t *RedisLockTable) SweepExpired(context.Context) (int64, error) {
	return 0, nil
}
