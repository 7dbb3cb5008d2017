package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/config"
	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// InsightHandler exposes AI insight endpoints.
type InsightHandler struct {
	insightService *services.InsightService
}

func NewInsightHandler(db *gorm.DB, cfg *config.AIConfig) *InsightHandler {
	return &InsightHandler{insightService: services.NewInsightService(db, cfg)}
}

// Service returns the underlying insight service for worker wiring.
func (h *InsightHandler) Service() *services.InsightService {
	return h.insightService
}

// List returns the caller's insights; ?workspace_id= filters.
// GET /api/insights
func (h *InsightHandler) List(c *gin.Context) {
	insights, err := h.insightService.List(
		middleware.GetPrincipal(c),
		queryUint(c, "workspace_id"),
		queryInt(c, "limit", 50),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}

// Generate queues an insight generation run
// POST /api/insights/generate
func (h *InsightHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	if err := h.insightService.Generate(middleware.GetPrincipal(c), req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(202, gin.H{"message": "insight generation queued"})
}

// MarkRead flags an insight as read
// PUT /api/insights/:id/read
func (h *InsightHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid insight id")
		return
	}

	insight, err := h.insightService.MarkRead(middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insight)
}

// Delete removes an insight
// DELETE /api/insights/:id
func (h *InsightHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid insight id")
		return
	}

	if err := h.insightService.Delete(middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "insight deleted"})
}
