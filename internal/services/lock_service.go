package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockService holds short-lived per-activity advisory locks in redis so that
// at most one signup sequence runs per activity at a time. With no redis
// client configured every acquire succeeds and the SQLite transaction plus
// the unique (activity, email) index carry correctness alone.
type LockService struct {
	Redis   *redis.Client
	Timeout time.Duration
}

func NewLockService(redisClient *redis.Client, timeout time.Duration) *LockService {
	return &LockService{Redis: redisClient, Timeout: timeout}
}

func (s *LockService) AcquireActivityLock(ctx context.Context, activityName string) (bool, error) {
	if s == nil || s.Redis == nil {
		return true, nil
	}

	lockKey := fmt.Sprintf("lock:activity:%s", activityName)
	return s.Redis.SetNX(ctx, lockKey, "locked", s.Timeout).Result()
}

func (s *LockService) ReleaseActivityLock(ctx context.Context, activityName string) error {
	if s == nil || s.Redis == nil {
		return nil
	}

	lockKey := fmt.Sprintf("lock:activity:%s", activityName)
	return s.Redis.Del(ctx, lockKey).Err()
}
