package adapter

import (
	"context"
	"fmt"
	"time"

	"cybake-bridge/internal/core/cache"

	"github.com/google/uuid"
)

const lockKeyPrefix = "import-lock:"

// CacheLocker implements the ImportLocker interface on top of the shared cache.
type CacheLocker struct {
	cache cache.Cache
}

// NewCacheLocker creates a new CacheLocker.
func NewCacheLocker(c cache.Cache) *CacheLocker {
	return &CacheLocker{cache: c}
}

// Acquire sets import-lock:<orderID> if absent. The returned token identifies this holder.
func (l *CacheLocker) Acquire(ctx context.Context, orderID string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.cache.SetNX(ctx, lockKey(orderID), []byte(token), ttl)
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes the lock only while it still holds token, in one atomic step.
// An expired lock, or one since taken by another request, is left alone.
func (l *CacheLocker) Release(ctx context.Context, orderID, token string) error {
	if _, err := l.cache.CompareAndDelete(ctx, lockKey(orderID), []byte(token)); err != nil {
		return fmt.Errorf("failed to release import lock: %w", err)
	}
	return nil
}

func lockKey(orderID string) string {
	return lockKeyPrefix + orderID
}
