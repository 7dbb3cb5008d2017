package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// ConnectionHandler exposes note-connection endpoints.
type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(db *gorm.DB) *ConnectionHandler {
	return &ConnectionHandler{connectionService: services.NewConnectionService(db)}
}

// ListByWorkspace returns a workspace's connection graph edges
// GET /api/workspaces/:id/connections
func (h *ConnectionHandler) ListByWorkspace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid workspace id")
		return
	}

	conns, err := h.connectionService.ListByWorkspace(middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conns)
}

// Create links two notes
// POST /api/connections
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req services.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	conn, err := h.connectionService.Create(middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conn)
}

// Update changes a connection's label, color or style
// PUT /api/connections/:id
func (h *ConnectionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid connection id")
		return
	}

	var req services.ConnectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	conn, err := h.connectionService.Update(middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conn)
}

// Delete removes a connection
// DELETE /api/connections/:id
func (h *ConnectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid connection id")
		return
	}

	if err := h.connectionService.Delete(middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "connection deleted"})
}
