package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/services"
)

// HealthHandler provides enhanced health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Running imports
	var runningImports int64
	models.GetDB().Model(&models.ImportJob{}).
		Where("status IN ?", []string{models.ImportStatusPending, models.ImportStatusRunning}).
		Count(&runningImports)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "reportdesk",
		"components": gin.H{
			"database":       dbStatus,
			"queue_mode":     queueMode,
			"active_imports": runningImports,
		},
	})
}
