package middleware

import (
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(logger.TraceIDKey).(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(consts.TraceHeader, "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", w.Header().Get(consts.TraceHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(consts.TraceHeader))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuditMiddleware_KeepsRequestBody(t *testing.T) {
	r := gin.New()
	r.Use(AuditMiddleware())
	var body string
	r.POST("/x", func(c *gin.Context) {
		raw, _ := c.GetRawData()
		body = string(raw)
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, `{"content":"hi"}`, body)
	assert.Equal(t, "ok", w.Body.String())
}

func TestTraceMiddleware_RejectsMalformedHeader(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, bad := range []string{strings.Repeat("a", 65), `a"b`, "has space"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(consts.TraceHeader, bad)
		r.ServeHTTP(w, req)
		assert.Len(t, w.Header().Get(consts.TraceHeader), 36, bad)
	}
}

func TestCORSMiddleware_AllowsTraceHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), consts.TraceHeader)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}
