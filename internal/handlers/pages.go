package handlers

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/services"
)

// PageHandler serves the minimal server-rendered pages the gates target.
// The real UI is a separate frontend; these pages keep the gate redirects
// meaningful when the backend runs standalone.
type PageHandler struct {
	db *gorm.DB
}

func NewPageHandler(db *gorm.DB) *PageHandler {
	return &PageHandler{db: db}
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>NoteVault</title></head>
<body><h1>%s</h1><p>%s</p></body>
</html>`

func servePage(c *gin.Context, title, body string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, pageTemplate, html.EscapeString(title), html.EscapeString(body))
}

// Home serves the landing page
// GET /
func (h *PageHandler) Home(c *gin.Context) {
	servePage(c, "NoteVault", "Collaborative note taking. The API lives under /api.")
}

// Setup serves the first-run setup page
// GET /setup
func (h *PageHandler) Setup(c *gin.Context) {
	servePage(c, "Setup", "No admin account exists yet. POST /api/setup to create the initial administrator.")
}

// Maintenance serves the maintenance notice
// GET /maintenance
func (h *PageHandler) Maintenance(c *gin.Context) {
	message := "The service is temporarily down for maintenance."
	if settings, err := services.GetSystemSettings(h.db); err == nil && settings.MaintenanceMessage != "" {
		message = settings.MaintenanceMessage
	}
	servePage(c, "Maintenance", message)
}
