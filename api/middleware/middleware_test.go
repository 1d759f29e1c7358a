package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"forum/api/response"
	"forum/config"
	"forum/pkg/logger"
	"forum/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, response.GetRequestID(c))
	})

	w := serve(engine, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc"})
	require.Equal(t, "abc", w.Body.String())
	require.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = serve(engine, http.MethodGet, "/ping", nil)
	require.NotEmpty(t, w.Body.String())
	require.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	engine := gin.New()
	engine.Use(RequestIDMiddleware(), RecoveryMiddleware())
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	require.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestCORSMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(CORSMiddleware(&config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"X-User-ID"},
		MaxAge:       600,
	}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodOptions, "/ping", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": "POST",
	})
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))

	w = serve(engine, http.MethodGet, "/ping", map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodGet, "/ping", map[string]string{"Origin": "http://evil.example"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 2}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)

	w := serve(engine, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
	t.Log("✓ 超出突发容量后返回 429")
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := gin.New()
	engine.Use(MetricsMiddleware(m))
	engine.GET("/questions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, http.MethodGet, "/questions/1", nil)
	serve(engine, http.MethodGet, "/questions/2", nil)
	serve(engine, http.MethodGet, "/nowhere", nil)

	count, err := testutil.GatherAndCount(reg, "forum_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count, "一个路由模板 + unmatched")
}
