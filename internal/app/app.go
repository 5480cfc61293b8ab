package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/clients/redis"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/db"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	statsCache redis.StatsCache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	statsCache, err := redis.NewStatsCache(log, cfg.StatsCacheTTL)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init redis stats cache: %w", err)
	}
	if statsCache == nil {
		log.Info("REDIS_ADDR not set, stats caching disabled")
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, statsCache)
	handlerset := wireHandlers(log, serviceset, pg)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, handlerset, middleware)

	return &App{
		Log:        log,
		DB:         theDB,
		Router:     router,
		Cfg:        cfg,
		Repos:      reposet,
		Services:   serviceset,
		statsCache: statsCache,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.statsCache != nil {
		a.statsCache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
