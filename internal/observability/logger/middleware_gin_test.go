package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/scootfleet/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGinMiddlewarePropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/ping", func(c *gin.Context) {
		seen = obscontext.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", resp.Header().Get(HeaderRequestID))
}

func TestGinMiddlewareGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, resp.Header().Get(HeaderRequestID))
}

func TestRequestLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, requestLevel("/metrics", http.StatusOK, ""))
	assert.Equal(t, zap.ErrorLevel, requestLevel("/api/rentals/end", http.StatusInternalServerError, "internal_error"))
	assert.Equal(t, zap.InfoLevel, requestLevel("/api/rentals/start", http.StatusConflict, "conflict"))
	assert.Equal(t, zap.WarnLevel, requestLevel("/api/rentals/start", http.StatusBadRequest, "validation_error"))
	assert.Equal(t, zap.InfoLevel, requestLevel("/api/rentals", http.StatusOK, ""))
}
