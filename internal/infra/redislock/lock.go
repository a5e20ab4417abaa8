// Package redislock guards employee/date schedules across processes that
// share one Redis.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// ErrLockNotAcquired is retryable: it wraps ErrTxAborted.
var ErrLockNotAcquired = fmt.Errorf("%w: schedule lock held by another writer", domain.ErrTxAborted)

type ScheduleLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewScheduleLocker returns a locker whose keys expire after ttl. A caller
// polls for up to wait before giving up.
func NewScheduleLocker(client *redis.Client, ttl, wait time.Duration) *ScheduleLocker {
	return &ScheduleLocker{client: client, ttl: ttl, wait: wait}
}

func (l *ScheduleLocker) WithScheduleLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	redisKey := "lock:schedule:" + key
	token := uuid.NewString()

	if err := l.acquire(ctx, redisKey, token); err != nil {
		return err
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), redisKey, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

func (l *ScheduleLocker) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.wait)
	backoff := 10 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return domain.Storage(fmt.Errorf("acquire schedule lock: %w", err))
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return domain.Storage(ctx.Err())
		case <-time.After(backoff):
		}
		if backoff < 200*time.Millisecond {
			backoff *= 2
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *ScheduleLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release schedule lock: %w", err)
	}
	return nil
}
