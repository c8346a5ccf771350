package main

import (
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockpulse/internal/caching"
	"stockpulse/internal/common"
	"stockpulse/internal/config"
	"stockpulse/internal/handlers"
	"stockpulse/internal/jobs"
	"stockpulse/internal/jobs/background"
	"stockpulse/internal/repositories"
	"stockpulse/internal/services"
	"stockpulse/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create repositories
	itemRepo := repositories.NewItemRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	alertRepo := repositories.NewAlertRepository(pool)
	cycleCountRepo := repositories.NewCycleCountRepository(pool)
	txRunner := repositories.NewTxRunner(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	classifier := services.NewClassifier(services.ClassifierConfig{
		OverstockMultiplier: cfg.OverstockMultiplier,
		ExpiryWindow:        time.Duration(cfg.ExpiryWindowDays) * 24 * time.Hour,
		DefaultReorderLevel: cfg.DefaultReorderLevel,
	})
	itemLocks := common.NewItemLocks()
	alertSvc := services.NewAlertService(alertRepo, txRunner, itemLocks, cfg.LedgerTimeout)
	cycleCountSvc := services.NewCycleCountService(itemRepo, cycleCountRepo, txRunner, classifier, alertSvc, cacheSvc, cfg.LedgerTimeout)
	statsSvc := services.NewStatsService(itemRepo, warehouseRepo, alertRepo, classifier, cacheSvc, cfg.LedgerTimeout)

	// Background classification sweep
	sweepSvc := jobs.NewSweepService(itemRepo, classifier, alertSvc)
	scheduler, err := background.NewJobScheduler(sweepSvc, cfg.SweepInterval)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create handlers
	alertHandlers := handlers.NewAlertHandlers(alertSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(cycleCountSvc, itemRepo)
	statsHandlers := handlers.NewStatsHandlers(statsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	v1.GET("/alerts", alertHandlers.ListAlerts)
	v1.POST("/alerts/:id/resolve", alertHandlers.ResolveAlert)

	v1.GET("/items", inventoryHandlers.ListItems)
	v1.POST("/items/:id/cycle-count", inventoryHandlers.CycleCount)
	v1.GET("/items/:id/cycle-counts", inventoryHandlers.CycleCountHistory)

	v1.GET("/stats", statsHandlers.GetStats)

	log.Printf("Stockpulse server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
