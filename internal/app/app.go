package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"stats_hub_backend/internal/analytics"
	"stats_hub_backend/internal/config"
	"stats_hub_backend/internal/controller"
	"stats_hub_backend/internal/repository"
	"stats_hub_backend/internal/service"
	"stats_hub_backend/pkg/configwatcher"
	"stats_hub_backend/pkg/database"
	"stats_hub_backend/pkg/logger"
	"stats_hub_backend/pkg/monitoring"
	"stats_hub_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	cfgMu           sync.RWMutex
	services        *services
	tracer          *sdktrace.TracerProvider
	stopWatch       chan struct{}
	configCallbacks []func(*config.Config)
}

type repositories struct {
	activity service.RecordSource
}

type services struct {
	statistics *service.StatisticsService
}

type controllers struct {
	statistics *controller.StatisticsController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// currentConfig 热更新后的最新配置
func (a *App) currentConfig() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.Config
}

func (a *App) jwtSecret() string {
	return a.currentConfig().JWT.Secret
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	var source service.RecordSource = repository.NewActivityRepository(db)

	if cfg.Statistics.CacheEnabled && cfg.Statistics.CacheTTLSeconds > 0 {
		if rdb != nil {
			source = repository.NewRedisCachedSource(source, rdb, cfg.Statistics.CacheTTL())
		} else {
			source = repository.NewLocalCachedSource(source, cfg.Statistics.LocalCacheSize, cfg.Statistics.CacheTTL())
		}
	}

	return &repositories{activity: source}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	engine := analytics.NewEngine()
	return &services{
		statistics: service.NewStatisticsService(repos.activity, engine, cfg.Statistics),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		statistics: controller.NewStatisticsController(s.statistics),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) watchConfig() {
	a.stopWatch = make(chan struct{})
	configFile := filepath.Join(configDir, "config.yaml")

	go func() {
		err := configwatcher.WatchConfig(configFile, func(newCfg *config.Config) {
			a.cfgMu.Lock()
			// 运行时标志不来自配置文件
			newCfg.ForceMigrate = a.Config.ForceMigrate
			newCfg.MigrateOnly = a.Config.MigrateOnly
			a.Config = newCfg
			a.cfgMu.Unlock()

			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		}, a.stopWatch)
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// 源表由各业务系统维护，这里只在开发环境或显式要求时建表
	if cfg.Server.Mode == "debug" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	repos := app.initRepositories(db, app.Redis, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, app.Redis)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.statistics.ApplyConfig(newCfg.Statistics)
		logger.Log.Info("Statistics modules updated", zap.Strings("modules", services.statistics.Modules()))
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("stats-hub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.stopWatch != nil {
		close(a.stopWatch)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
