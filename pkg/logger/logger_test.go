package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/usedcar-api/pkg/config"
	"github.com/noah-isme/usedcar-api/pkg/middleware/requestid"
)

func TestNewFallsBackOnInvalidLevel(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "loud", Format: "console"}}

	l, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(requestid.Middleware())
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, "user-9")
		c.Next()
	})
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/cars/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cars/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "/cars/:id", ctx["route"])
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, "user-9", ctx["user_id"])
	assert.EqualValues(t, http.StatusNotFound, ctx["status"])
}
