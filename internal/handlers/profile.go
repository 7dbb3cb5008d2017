package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// ProfileHandler serves public profile reads and self-service updates.
type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{service: services.NewProfileService(db)}
}

// Get returns a user's public profile.
// GET /api/profile/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid user id")
		return
	}

	profile, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// Update changes the caller's own name, avatar or bio.
// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req services.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	user, err := h.service.Update(middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
