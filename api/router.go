package api

import (
	"net/http"

	"forum/api/middleware"
	"forum/config"
	"forum/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ControllerRegister 控制器在 /api/v1 下注册自己的路由
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister 额外的全局中间件，在默认中间件之后执行
type MiddlewareRegister = gin.HandlerFunc

// Route 挂在根路径上的自定义路由
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router Route configuration
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	controllers  []ControllerRegister
	customRoutes []Route
	metrics      *metrics.Metrics
}

// NewRouter Create route configuration
// m 为 nil 时不挂载指标中间件和 /metrics
func NewRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	controllers []ControllerRegister,
	middlewares []MiddlewareRegister,
	customRoutes []Route,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.TestMode)
	}

	engine := gin.New()

	// 顺序很重要：请求 ID 最先生成
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	if cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware(cfg.App.Name))
	}
	engine.Use(middleware.LoggingMiddleware())
	if m != nil {
		engine.Use(middleware.MetricsMiddleware(m))
	}
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	for _, mw := range middlewares {
		engine.Use(mw)
	}

	return &Router{
		engine:       engine,
		config:       cfg,
		controllers:  controllers,
		customRoutes: customRoutes,
		metrics:      m,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
