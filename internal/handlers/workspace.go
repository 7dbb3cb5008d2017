package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// WorkspaceHandler exposes workspace CRUD and membership endpoints.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(db *gorm.DB) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: services.NewWorkspaceService(db)}
}

// List returns the caller's workspaces
// GET /api/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaceService.List(middleware.GetPrincipal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, workspaces)
}

// Create makes a new workspace
// POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req services.WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	ws, err := h.workspaceService.Create(middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ws)
}

// Get returns one workspace with members
// GET /api/workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	ws, err := h.workspaceService.Get(middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ws)
}

// Update edits workspace metadata
// PUT /api/workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	var req services.WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	ws, err := h.workspaceService.Update(middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ws)
}

// Delete soft-deletes a workspace
// DELETE /api/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	if err := h.workspaceService.Delete(middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "workspace deleted"})
}

// Invite adds a member by email
// POST /api/workspaces/:id/members
func (h *WorkspaceHandler) Invite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	member, err := h.workspaceService.Invite(middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// RemoveMember removes a user from the workspace
// DELETE /api/workspaces/:id/members/:userId
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		response.InvalidInput(c, "invalid user id")
		return
	}

	if err := h.workspaceService.RemoveMember(middleware.GetPrincipal(c), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "member removed"})
}

// Leave removes the caller's own membership
// POST /api/workspaces/:id/leave
func (h *WorkspaceHandler) Leave(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	if err := h.workspaceService.Leave(middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "left workspace"})
}
