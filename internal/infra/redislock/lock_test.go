package redislock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func TestErrLockNotAcquired_IsRetryable(t *testing.T) {
	if !errors.Is(ErrLockNotAcquired, domain.ErrTxAborted) {
		t.Fatalf("ErrLockNotAcquired must wrap ErrTxAborted")
	}
}

func TestScheduleLocker_Exclusive(t *testing.T) {
	url := os.Getenv("SALON_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SALON_TEST_REDIS_URL not set")
	}

	client, err := NewRedisClient(url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer client.Close()

	locker := NewScheduleLocker(client, 2*time.Second, 50*time.Millisecond)
	ctx := context.Background()
	key := "test|" + time.Now().Format(time.RFC3339Nano)

	err = locker.WithScheduleLock(ctx, key, func(ctx context.Context) error {
		inner := locker.WithScheduleLock(ctx, key, func(context.Context) error {
			t.Fatal("second holder must not enter")
			return nil
		})
		if !errors.Is(inner, ErrLockNotAcquired) {
			t.Fatalf("inner err = %v, want ErrLockNotAcquired", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("outer err = %v", err)
	}

	// Released after the first holder returns.
	if err := locker.WithScheduleLock(ctx, key, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("reacquire err = %v", err)
	}
}
