package wire

import (
	"Microblog/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB:        config.DBConfig{Driver: "memory"},
		Storage:   config.StorageConfig{Driver: "local", Root: t.TempDir()},
		Thumbnail: config.ThumbnailConfig{Width: 400, Dir: "thumbnails"},
		Cleanup:   config.CleanupConfig{Spec: "@daily", GraceDays: 3},
		Event:     config.EventConfig{Buffer: 8, Workers: 1},
		Upload:    config.UploadConfig{MaxSize: 1 << 20},
	}
}

func TestBuildApplication_Memory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := BuildApplication(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	assert.Nil(t, app.DB)
	require.NotNil(t, app.CronMgr)
	require.NotNil(t, app.Bus)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestBuildApplication_UnknownDrivers(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.DB.Driver = "sqlite"
	_, err := BuildApplication(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported database driver")

	cfg = memoryConfig(t)
	cfg.Storage.Driver = "s3"
	_, err = BuildApplication(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported storage driver")
}
