package redis

import (
	"context"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Locker 保证定时任务在多个进程间只有一个实例执行
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	UnLock(ctx context.Context, key string, value string)
}

type redisLocker struct {
	rdb redis.UniversalClient
}

func NewLocker(rdb redis.UniversalClient) Locker {
	return &redisLocker{rdb: rdb}
}

// TryLock SETNX 加锁，不重试
func (s *redisLocker) TryLock(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, expiration).Result()
}

// UnLock 只释放自己持有的锁
func (s *redisLocker) UnLock(ctx context.Context, key string, value string) {
	if err := s.rdb.Eval(ctx, unlockScript, []string{key}, value).Err(); err != nil {
		log.WarnContext(ctx, "redis unlock failed", "key", key, "err", err)
	}
}

type noopLocker struct{}

// NewNoopLocker 单实例部署时使用，总是加锁成功
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) TryLock(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (noopLocker) UnLock(context.Context, string, string) {}
