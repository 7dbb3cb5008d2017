package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// ActivityHandler exposes the recent-activity feed.
type ActivityHandler struct {
	db *gorm.DB
}

func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{db: db}
}

// List returns recent activity visible to the caller
// GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := services.ListActivities(
		h.db,
		middleware.GetUserID(c),
		queryUint(c, "workspace_id"),
		queryInt(c, "limit", 20),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activities)
}
