package job

import (
	"Microblog/internal/pkg/logger"
	"Microblog/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// lockTTL 清理任务持锁上限，超时后锁自动释放
const lockTTL = 30 * time.Minute

// runExclusive 创建带 trace 的上下文，获取锁后执行 fn
func runExclusive(locker redis.Locker, name, lockKey string, fn func(ctx context.Context) (int, error)) {
	ctx := logger.WithTrace(context.Background(), "job-"+name)
	lockValue := uuid.NewString()

	ok, err := locker.TryLock(ctx, lockKey, lockValue, lockTTL)
	if err != nil {
		log.ErrorContext(ctx, "acquire job lock error", "job", name, "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "job is running elsewhere, skip", "job", name)
		return
	}
	defer locker.UnLock(ctx, lockKey, lockValue)

	start := time.Now()
	count, err := fn(ctx)
	if err != nil {
		log.ErrorContext(ctx, "job failed", "job", name, "purged", count, "err", err)
		return
	}
	log.InfoContext(ctx, "job finished", "job", name, "purged", count, "cost", time.Since(start).String())
}
