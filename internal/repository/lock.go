package repository

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotHeld means a release was attempted with a token that no longer
// owns the lock (expired or taken over).
var ErrLockNotHeld = errors.New("repository: lock not held")

// RoomLocker serializes state-mutating operations on a single room. Acquire
// blocks until the lock is obtained or ctx is done; the returned token must
// be passed back to Release.
type RoomLocker interface {
	Acquire(ctx context.Context, roomID uint, ttl time.Duration) (token string, err error)
	Release(ctx context.Context, roomID uint, token string) error
}
