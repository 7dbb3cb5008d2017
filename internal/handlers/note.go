package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// NoteHandler exposes note CRUD and trash endpoints.
type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{noteService: services.NewNoteService(db)}
}

// List returns visible notes; ?workspace_id= scopes to one workspace,
// ?trash=true lists the caller's trashed notes, ?q= searches.
// GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	q := services.NoteQuery{
		WorkspaceID: queryUint(c, "workspace_id"),
		Trash:       c.Query("trash") == "true",
		Search:      c.Query("q"),
	}

	notes, err := h.noteService.List(middleware.GetPrincipal(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notes)
}

// Create makes a new note
// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req services.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	note, err := h.noteService.Create(middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Get returns one note
// GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid note id")
		return
	}

	note, err := h.noteService.Get(middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, note)
}

// Update edits a note
// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid note id")
		return
	}

	var req services.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	note, err := h.noteService.Update(middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, note)
}

// Delete moves a note to the trash
// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid note id")
		return
	}

	if err := h.noteService.Delete(middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "note moved to trash"})
}

// Restore recovers a trashed note
// POST /api/notes/:id/restore
func (h *NoteHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.InvalidInput(c, "invalid note id")
		return
	}

	note, err := h.noteService.Restore(middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, note)
}
