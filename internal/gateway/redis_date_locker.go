package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/usecase"
)

// RedisDateLocker hands out one lease per calendar date across processes.
type RedisDateLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

func NewRedisDateLocker(rdb *redis.Client, ttl time.Duration) *RedisDateLocker {
	return &RedisDateLocker{locker: redislock.New(rdb), ttl: ttl}
}

func (l *RedisDateLocker) Lock(ctx context.Context, date time.Time) (usecase.Lease, error) {
	lock, err := l.locker.Obtain(ctx, dateLockKey(date), l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, usecase.ErrDateLocked
	}
	if err != nil {
		return nil, fmt.Errorf("error obtaining date lock: %w", err)
	}
	return &redisLease{lock: lock, ttl: l.ttl}, nil
}

type redisLease struct {
	lock *redislock.Lock
	ttl  time.Duration
}

// Refresh pushes the lease expiry ttl into the future. redislock reports a
// key that expired or changed hands as ErrNotObtained.
func (l *redisLease) Refresh(ctx context.Context) error {
	return leaseError(l.lock.Refresh(ctx, l.ttl, nil))
}

func (l *redisLease) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}

func leaseError(err error) error {
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, redislock.ErrLockNotHeld) {
		return usecase.ErrDateLocked
	}
	if err != nil {
		return fmt.Errorf("error refreshing date lock: %w", err)
	}
	return nil
}

func dateLockKey(date time.Time) string {
	return fmt.Sprintf("lock:day:%s", domain.TruncateDate(date).Format(domain.DateLayout))
}
