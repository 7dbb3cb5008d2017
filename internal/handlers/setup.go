package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// SetupHandler exposes the first-run bootstrap endpoints.
type SetupHandler struct {
	setupService *services.SetupService
}

func NewSetupHandler(db *gorm.DB) *SetupHandler {
	return &SetupHandler{setupService: services.NewSetupService(db)}
}

// Status reports whether the instance still needs its first admin.
// GET /api/setup
func (h *SetupHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{"setup_required": h.setupService.IsSetupRequired()})
}

// Create provisions the initial admin account.
// POST /api/setup
func (h *SetupHandler) Create(c *gin.Context) {
	var req services.CreateInitialAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	admin, err := h.setupService.CreateInitialAdmin(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, admin.Public())
}
