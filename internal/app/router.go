package app

import (
	"stats_hub_backend/docs"
	"stats_hub_backend/internal/config"
	"stats_hub_backend/internal/middleware"
	"stats_hub_backend/pkg/monitoring"
	"stats_hub_backend/pkg/security"
	"stats_hub_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	public.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, security.ClientIPKey))
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由，按用户限流
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(a.jwtSecret),
		security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, middleware.UserKey),
	)
	{
		a.registerStatisticsRoutes(authGroup, c)
	}
}

func (a *App) registerStatisticsRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/statistics", c.statistics.GetStatistics)
	rg.GET("/statistics/overview", c.statistics.GetOverview)
	rg.GET("/statistics/widgets", c.statistics.GetWidgets)
	rg.GET("/statistics/export", c.statistics.Export)
}
