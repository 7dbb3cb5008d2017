package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// ChatHandler exposes the public chat feed.
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{chatService: services.NewChatService(db)}
}

// List returns a page of messages; ?cursor= fetches older pages.
// GET /api/chat
func (h *ChatHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	var cursor uint
	if cu := queryUint(c, "cursor"); cu != nil {
		cursor = *cu
	}

	page, err := h.chatService.List(limit, cursor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Post appends a message to the feed
// POST /api/chat
func (h *ChatHandler) Post(c *gin.Context) {
	var req services.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	msg, err := h.chatService.Post(middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}
