package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// AnnouncementHandler exposes announcement endpoints.
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: services.NewAnnouncementService(db)}
}

// List returns live announcements, pinned first
// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcementService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, announcements)
}

// Create publishes an announcement (admin)
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req services.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	announcement, err := h.announcementService.Create(middleware.GetPrincipal(c), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, announcement)
}
