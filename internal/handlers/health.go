package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/services"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct {
	setupService *services.SetupService
}

func NewHealthHandler(setupService *services.SetupService) *HealthHandler {
	return &HealthHandler{setupService: setupService}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
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

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "notevault",
		"components": gin.H{
			"database":       dbStatus,
			"queue_mode":     queueMode,
			"sse_clients":    services.GetEventHub().ClientCount(),
			"setup_required": h.setupService.IsSetupRequired(),
		},
	})
}
