package job

import (
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/redis"
	"Microblog/internal/service"
	"context"
	"time"
)

// TrashCleanupJob 物理删除回收站中过期的帖子
type TrashCleanupJob struct {
	cleanupSvc service.CleanupService
	locker     redis.Locker
	now        func() time.Time
}

func NewTrashCleanupJob(cleanupSvc service.CleanupService, locker redis.Locker) *TrashCleanupJob {
	return &TrashCleanupJob{
		cleanupSvc: cleanupSvc,
		locker:     locker,
		now:        time.Now,
	}
}

func (s *TrashCleanupJob) Run() {
	runExclusive(s.locker, "trash-cleanup", consts.TrashCleanupLock, func(ctx context.Context) (int, error) {
		return s.cleanupSvc.PurgeExpiredTrash(ctx, s.now())
	})
}
