// Package redisstate implements room-level locks on Redis.
package redisstate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"focushive/internal/repository"
)

// releaseScript deletes the lock key only when the caller still owns it, so
// a lock that expired and was re-acquired by someone else is never released
// from under them.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisRoomLocker is the Redis implementation of RoomLocker. Locks are SET NX
// keys with a TTL; Acquire polls until the lock is free or ctx is done.
type RedisRoomLocker struct {
	client    *redis.Client
	keyPrefix string
	// retryInterval is how long Acquire sleeps between attempts.
	retryInterval time.Duration
}

func NewRedisRoomLocker(client *redis.Client, keyPrefix string) *RedisRoomLocker {
	if client == nil {
		panic("redis client cannot be nil for RedisRoomLocker")
	}
	if keyPrefix == "" {
		keyPrefix = "fh:"
	}
	return &RedisRoomLocker{
		client:        client,
		keyPrefix:     keyPrefix,
		retryInterval: 25 * time.Millisecond,
	}
}

func (l *RedisRoomLocker) roomLockKey(roomID uint) string {
	return fmt.Sprintf("%sroom:%d:lock", l.keyPrefix, roomID)
}

func (l *RedisRoomLocker) Acquire(ctx context.Context, roomID uint, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("redis: generate lock token: %w", err)
	}
	key := l.roomLockKey(roomID)

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("redis: acquire lock %s: %w", key, err)
		}
		if ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *RedisRoomLocker) Release(ctx context.Context, roomID uint, token string) error {
	key := l.roomLockKey(roomID)
	deleted, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int()
	if err != nil {
		return fmt.Errorf("redis: release lock %s: %w", key, err)
	}
	if deleted == 0 {
		return repository.ErrLockNotHeld
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
