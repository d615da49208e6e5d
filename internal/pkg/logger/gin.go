package logger

import (
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessEntry struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
	Size     int    `json:"size"`
	Error    string `json:"error,omitempty"`
}

func traceFromParams(p gin.LogFormatterParams) string {
	if id, ok := p.Keys[TraceIDKey].(string); ok {
		return id
	}
	if p.Request != nil {
		if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
			return id
		}
	}
	return ""
}

func formatAccess(p gin.LogFormatterParams) string {
	level := "INFO"
	if p.StatusCode >= 500 {
		level = "ERROR"
	}
	line, err := json.Marshal(accessEntry{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    level,
		Msg:      "GIN_ACCESS",
		TraceID:  traceFromParams(p),
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
		Size:     p.BodySize,
		Error:    p.ErrorMessage,
	})
	if err != nil {
		return ""
	}
	return string(line) + "\n"
}

// SetupGin 注册 JSON 格式的访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: formatAccess,
		SkipPaths: []string{"/api/ping"},
	}))
	r.Use(gin.CustomRecoveryWithWriter(LogWriter, func(c *gin.Context, err any) {
		log.ErrorContext(c.Request.Context(), "panic recovered", "err", err, "path", c.Request.URL.Path)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
