package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/project-clarion/core/internal/config"
	"github.com/project-clarion/core/internal/middleware"
	"github.com/project-clarion/core/internal/modules/sources/factcheckdb"
	"github.com/project-clarion/core/internal/modules/sources/news"
	"github.com/project-clarion/core/internal/modules/sources/reasoning"
	"github.com/project-clarion/core/internal/modules/verify/check"
	"github.com/project-clarion/core/internal/modules/verify/trending"
	"github.com/project-clarion/core/internal/pkg/cache"
	"github.com/project-clarion/core/internal/pkg/cron"
	pkgredis "github.com/project-clarion/core/internal/pkg/redis"
	"github.com/project-clarion/core/internal/pkg/retry"
	"go.uber.org/zap"
)

const trendingRefreshInterval = 15 * time.Minute

// App holds all application dependencies.
type App struct {
	cfg       *config.AppConfig
	router    *gin.Engine
	engine    *check.Service
	trending  *trending.Service
	scheduler *cron.Scheduler
	rc        *pkgredis.Client
	logger    *zap.Logger
}

// New initializes the application: config → cache → adapters → engine → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var (
		store cache.Store
		rc    *pkgredis.Client
	)
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client, err := pkgredis.Connect(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		rc = client
		store = cache.NewRedis(client, cfg.CacheTTL())
	default:
		store = cache.NewMemory(cfg.CacheTTL())
	}

	factCheckClient := factcheckdb.New(cfg.FactCheck.APIKey)
	newsClient := news.New(cfg.News.APIKey, news.WithMaxResults(cfg.News.MaxResults))
	aiClient := reasoning.New(cfg.SelectAIProvider())

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.Retry.MaxAttempts
	retryCfg.BaseDelay = cfg.RetryBaseDelay()

	engine := check.NewService(factCheckClient, newsClient, aiClient, store, retryCfg, logger)
	trendingSvc := trending.NewService(engine)

	scheduler := cron.New(logger)
	if cfg.News.APIKey != "" {
		scheduler.Register(cron.Job{
			Name:     "trending-refresh",
			Interval: trendingRefreshInterval,
			Fn:       trendingSvc.Refresh,
		})
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{
		cfg:       cfg,
		router:    router,
		engine:    engine,
		trending:  trendingSvc,
		scheduler: scheduler,
		rc:        rc,
		logger:    logger,
	}
	app.registerRoutes()

	return app, nil
}

// Start launches the background jobs. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.scheduler.Start(ctx)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
