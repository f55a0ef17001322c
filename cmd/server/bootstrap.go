package main

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/yaas-media/reportdesk/internal/config"
	"github.com/yaas-media/reportdesk/internal/handlers"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/internal/utils"
	"github.com/yaas-media/reportdesk/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg         *config.Config
	authHandler *handlers.AuthHandler
	authService *services.AuthService
	taskQueue   services.TaskQueue
	worker      *services.Worker
	logCron     *cron.Cron
	digestCron  *cron.Cron
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

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	logCron := services.StartLogCleanupScheduler(models.GetDB())

	// Start the weekly digest scheduler
	digestCron := services.StartDigestScheduler(models.GetDB(), &cfg.OpenAI)

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	importService := services.NewImportService(models.GetDB())
	processImport := func(ctx context.Context, task *services.ImportTask) error {
		return importService.Run(ctx, task.JobID, task.Input)
	}

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processImport)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processImport)
			worker.Start()
		}
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:         cfg,
		authHandler: authHandler,
		authService: services.NewAuthService(models.GetDB(), &cfg.LDAP, &cfg.JWT),
		taskQueue:   taskQueue,
		worker:      worker,
		logCron:     logCron,
		digestCron:  digestCron,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	if s.logCron != nil {
		s.logCron.Stop()
	}
	if s.digestCron != nil {
		s.digestCron.Stop()
	}
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
