package main

import (
	"github.com/notevault/notevault/internal/config"
	"github.com/notevault/notevault/internal/handlers"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/internal/utils"
	"github.com/notevault/notevault/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg              *config.Config
	setupService     *services.SetupService
	retentionService *services.RetentionService
	taskQueue        services.TaskQueue
	worker           *services.Worker
	insightHandler   *handlers.InsightHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Initialize the global audit and activity writers
	services.InitAuditLogger(db)
	services.InitActivityLogger(db)

	// Start retention cleanup scheduler
	retentionService := services.NewRetentionService(db)
	retentionService.StartScheduler()

	// Insight generation pipeline: task queue feeds the insight processor
	insightHandler := handlers.NewInsightHandler(db, &cfg.AI)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(insightHandler.Service().Process)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(insightHandler.Service().Process)
			worker.Start()
		}
	}

	return &appServices{
		cfg:              cfg,
		setupService:     services.NewSetupService(db),
		retentionService: retentionService,
		taskQueue:        taskQueue,
		worker:           worker,
		insightHandler:   insightHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.retentionService.StopScheduler()
	logger.Info().Msg("Schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
