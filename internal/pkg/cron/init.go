package cron

import (
	"fmt"
	log "log/slog"
)

// InitCron 注册清理任务并启动调度，启动后打印每个任务的下一次执行时间
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("failed to register cron jobs with spec %q: %w", mgr.spec, err)
	}
	mgr.Start()
	for _, entry := range mgr.engine.Entries() {
		log.Info("Cron job scheduled", "entry", entry.ID, "next", entry.Next)
	}
	return nil
}
