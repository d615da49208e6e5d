package logger

import (
	"Microblog/internal/api/config"
	"io"
	log "log/slog"
	"os"
	"strings"
)

var LogWriter io.Writer = os.Stdout

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func InitLogger(cfg config.LogConfig) {
	opts := &log.HandlerOptions{Level: ParseLevel(cfg.Level)}
	hStdout := log.NewJSONHandler(os.Stdout, opts)

	var finalHandler log.Handler = hStdout

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			hFile := log.NewJSONHandler(file, opts)
			finalHandler = NewTeeHandler(hStdout, hFile)
			LogWriter = io.MultiWriter(os.Stdout, file)
		} else {
			log.Warn("Failed to open log file, logging to stdout only", "file", cfg.File, "err", err)
		}
	}

	logger := log.New(&ContextHandler{finalHandler})
	log.SetDefault(logger)
}
