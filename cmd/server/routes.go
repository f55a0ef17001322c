package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/handlers"
	"github.com/yaas-media/reportdesk/internal/middleware"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiters: one for login brute force, one for bulk imports
	loginLimiter := middleware.NewRateLimiter(1, 5)
	importLimiter := middleware.NewRateLimiter(0.2, 2)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", loginLimiter.Middleware(), svc.authHandler.Register)
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Weekly reports (editor side)
			reportHandler := handlers.NewReportHandler(models.GetDB(), svc.authService)
			protected.POST("/reports", reportHandler.Submit)
			protected.GET("/reports/week-options", reportHandler.WeekOptions)
			protected.GET("/reports/mine", reportHandler.Mine)

			// IP catalog (read-only for editors, feeds the submission form)
			registryHandler := handlers.NewRegistryHandler(models.GetDB())
			protected.GET("/ips", registryHandler.ListIPs)
		}

		// Admin only routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Dashboard
			adminHandler := handlers.NewAdminHandler(models.GetDB())
			admin.GET("/tracker", adminHandler.Tracker)
			admin.GET("/reports", adminHandler.Reports)
			admin.GET("/reports/export", adminHandler.Export)
			admin.GET("/editors/history", adminHandler.History)

			// Editor roster
			registryHandler := handlers.NewRegistryHandler(models.GetDB())
			admin.GET("/registry", registryHandler.ListEditors)
			admin.POST("/registry", registryHandler.CreateEditor)
			admin.PUT("/registry/:id", registryHandler.UpdateEditor)
			admin.DELETE("/registry/:id", registryHandler.DeleteEditor)

			// IP catalog
			admin.GET("/ips", registryHandler.ListIPs)
			admin.POST("/ips", registryHandler.CreateIP)
			admin.PUT("/ips/:id", registryHandler.UpdateIP)
			admin.DELETE("/ips/:id", registryHandler.DeleteIP)

			// Bulk import
			importHandler := handlers.NewImportHandler(models.GetDB())
			admin.POST("/import", importLimiter.Middleware(), importHandler.Start)
			admin.GET("/import", importHandler.ListJobs)
			admin.GET("/import/:id", importHandler.GetJob)

			// Weekly digests
			digestHandler := handlers.NewDigestHandler(models.GetDB(), svc.cfg)
			admin.GET("/digests", digestHandler.List)
			admin.POST("/digests/generate", digestHandler.Generate)

			// System logs
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			admin.GET("/system-logs", systemLogHandler.List)
			admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)
		}
	}
}
