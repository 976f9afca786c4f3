package middleware

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

	"github.com/d60-Lab/posting/pkg/logger"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer logger.Replace(zap.New(core))()

	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusInternalServerError, entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}
