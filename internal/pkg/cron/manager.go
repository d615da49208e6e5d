package cron

import (
	"Microblog/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const DefaultSpec = "@daily"

type Manager struct {
	engine   *cron.Cron
	spec     string
	draftJob *job.DraftCleanupJob
	trashJob *job.TrashCleanupJob
}

func NewCronManager(spec string, draftJob *job.DraftCleanupJob, trashJob *job.TrashCleanupJob) *Manager {
	if spec == "" {
		spec = DefaultSpec
	}
	logger := slogLogger{}
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		spec:     spec,
		draftJob: draftJob,
		trashJob: trashJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.draftJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.spec, s.trashJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "spec", s.spec)
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// slogLogger 将 cron 内部日志转到 slog
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
