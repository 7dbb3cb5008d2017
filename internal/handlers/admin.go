package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// AdminHandler exposes the admin console endpoints: settings, stats, the
// user directory and the audit log.
type AdminHandler struct {
	db              *gorm.DB
	settingsService *services.SettingsService
	statsService    *services.StatsService
	userService     *services.AdminUserService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		db:              db,
		settingsService: services.NewSettingsService(db),
		statsService:    services.NewStatsService(db),
		userService:     services.NewAdminUserService(db),
	}
}

// GetSettings returns the system settings
// GET /api/admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(middleware.GetPrincipal(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings applies a partial settings change
// PUT /api/admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req services.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	settings, err := h.settingsService.Update(middleware.GetPrincipal(c), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// GetStats returns the dashboard counters
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Get(middleware.GetPrincipal(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// ListUsers returns the paginated user directory (moderator or above)
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	q := services.UserQuery{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
		Search:   c.Query("q"),
		Role:     c.Query("role"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		q.IsActive = &active
	}

	page, err := h.userService.List(middleware.GetPrincipal(c), q, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// UpdateUser changes a user's role or active flag (admin)
// PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid user id")
		return
	}

	var req services.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	user, err := h.userService.Update(middleware.GetPrincipal(c), id, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// ListAuditLogs returns audit entries, newest first
// GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	q := services.AuditQuery{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
		Action:   c.Query("action"),
		ActorID:  queryUint(c, "actor_id"),
	}

	logs, total, err := services.ListAuditLogs(h.db, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"logs": logs, "total": total})
}
