package job

import (
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/redis"
	"Microblog/internal/service"
	"context"
	"time"
)

// DraftCleanupJob 清理长时间未保存的草稿
type DraftCleanupJob struct {
	cleanupSvc service.CleanupService
	locker     redis.Locker
	now        func() time.Time
}

func NewDraftCleanupJob(cleanupSvc service.CleanupService, locker redis.Locker) *DraftCleanupJob {
	return &DraftCleanupJob{
		cleanupSvc: cleanupSvc,
		locker:     locker,
		now:        time.Now,
	}
}

func (s *DraftCleanupJob) Run() {
	runExclusive(s.locker, "draft-cleanup", consts.DraftCleanupLock, func(ctx context.Context) (int, error) {
		return s.cleanupSvc.PurgeStaleDrafts(ctx, s.now())
	})
}
