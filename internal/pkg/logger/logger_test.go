package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := WithTrace(context.Background(), "job-test")
	l.InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	traceID, _ := entry["trace_id"].(string)
	assert.True(t, strings.HasPrefix(traceID, "job-test-"))
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	tee := NewTeeHandler(
		log.NewJSONHandler(&infoBuf, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&errBuf, &log.HandlerOptions{Level: log.LevelError}),
	)
	l := log.New(tee)

	l.Info("info line")
	l.Error("error line")

	assert.Equal(t, 2, strings.Count(infoBuf.String(), "\n"))
	assert.Equal(t, 1, strings.Count(errBuf.String(), "\n"))
	assert.Contains(t, errBuf.String(), "error line")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, log.LevelInfo, ParseLevel("nonsense"))
}

func TestFormatAccessEscapesPath(t *testing.T) {
	line := formatAccess(gin.LogFormatterParams{
		TimeStamp:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		StatusCode: 503,
		Latency:    15 * time.Millisecond,
		Method:     "GET",
		Path:       `/api/posts/"x"`,
		Request:    httptest.NewRequest("GET", "/", nil).WithContext(context.WithValue(context.Background(), TraceIDKey, "t-1")),
	})
	require.True(t, strings.HasSuffix(line, "\n"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, `/api/posts/"x"`, entry["path"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "t-1", entry["trace_id"])
	assert.Equal(t, "15ms", entry["latency"])
}

func TestSlogGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug})))
	t.Cleanup(func() { log.SetDefault(prev) })

	l := NewGormLogger()
	fc := func() (string, int64) { return "select * from posts", 1 }

	l.Trace(context.Background(), time.Now(), fc, nil)
	assert.Contains(t, buf.String(), `"msg":"SQL SELECT"`)

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), `"msg":"SQL SELECT Slow"`)

	buf.Reset()
	l.LogMode(0).Trace(context.Background(), time.Now(), fc, assert.AnError)
	assert.Empty(t, buf.String())
}
