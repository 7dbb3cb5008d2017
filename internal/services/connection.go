package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// ConnectionService manages the directed edges between notes.
type ConnectionService struct {
	db    *gorm.DB
	notes *NoteService
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{db: db, notes: NewNoteService(db)}
}

var validConnectionStyles = map[string]bool{
	models.ConnectionStyleSolid:  true,
	models.ConnectionStyleDashed: true,
	models.ConnectionStyleDotted: true,
}

// ConnectionRequest carries create fields.
type ConnectionRequest struct {
	FromID uint   `json:"from_id" binding:"required"`
	ToID   uint   `json:"to_id" binding:"required"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Style  string `json:"style"`
}

// ConnectionUpdateRequest carries the mutable presentation fields.
type ConnectionUpdateRequest struct {
	Label *string `json:"label"`
	Color *string `json:"color"`
	Style *string `json:"style"`
}

// ListByWorkspace returns every connection whose endpoints are live notes
// of the workspace.
func (s *ConnectionService) ListByWorkspace(p authz.Principal, workspaceID uint) ([]models.NoteConnection, error) {
	if _, err := s.notes.workspaces.authorize(p, authz.WorkspaceView, workspaceID); err != nil {
		return nil, err
	}

	noteIDs := s.db.Model(&models.Note{}).Select("id").
		Where("workspace_id = ? AND is_deleted = ?", workspaceID, false)

	var conns []models.NoteConnection
	err := s.db.
		Where("from_id IN (?) AND to_id IN (?)", noteIDs, noteIDs).
		Order("id ASC").
		Find(&conns).Error
	return conns, err
}

// Create links two notes. Both endpoints must be live, distinct, in the
// same workspace, and writable by the principal. A duplicate edge in the
// same direction is a 409; the unique index on (from_id, to_id) is the
// backstop when two requests race past the pre-check.
func (s *ConnectionService) Create(p authz.Principal, req ConnectionRequest) (*models.NoteConnection, error) {
	if req.FromID == req.ToID {
		return nil, response.NewInvalidInput("a note cannot be connected to itself")
	}
	if details := validateConnectionStyle(req.Style, req.Color); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid connection", details...)
	}

	from, err := s.liveNote(p, req.FromID)
	if err != nil {
		return nil, err
	}
	to, err := s.liveNote(p, req.ToID)
	if err != nil {
		return nil, err
	}

	if !sameWorkspace(from, to) {
		return nil, response.NewInvalidInput("notes must belong to the same workspace")
	}

	var existing int64
	if err := s.db.Model(&models.NoteConnection{}).
		Where("from_id = ? AND to_id = ?", req.FromID, req.ToID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("these notes are already connected")
	}

	conn := models.NoteConnection{
		FromID: req.FromID,
		ToID:   req.ToID,
		Label:  req.Label,
	}
	if req.Color != "" {
		conn.Color = req.Color
	}
	if req.Style != "" {
		conn.Style = req.Style
	}
	if err := s.db.Create(&conn).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflict("these notes are already connected")
		}
		return nil, err
	}
	return &conn, nil
}

// Update changes label, color or style of an existing connection.
func (s *ConnectionService) Update(p authz.Principal, connID uint, req ConnectionUpdateRequest) (*models.NoteConnection, error) {
	conn, err := s.load(p, connID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Color != nil {
		if !isHexColor(*req.Color) {
			return nil, response.NewInvalidInput("invalid connection",
				response.FieldError{Field: "color", Message: "must be a #rrggbb color"})
		}
		updates["color"] = *req.Color
	}
	if req.Style != nil {
		if !validConnectionStyles[*req.Style] {
			return nil, response.NewInvalidInput("invalid connection",
				response.FieldError{Field: "style", Message: "must be SOLID, DASHED or DOTTED"})
		}
		updates["style"] = *req.Style
	}
	if len(updates) == 0 {
		return conn, nil
	}

	if err := s.db.Model(conn).Updates(updates).Error; err != nil {
		return nil, err
	}
	return conn, nil
}

// Delete removes a connection.
func (s *ConnectionService) Delete(p authz.Principal, connID uint) error {
	conn, err := s.load(p, connID)
	if err != nil {
		return err
	}
	return s.db.Delete(conn).Error
}

// load fetches a connection the principal may mutate: write access to the
// from-endpoint is required.
func (s *ConnectionService) load(p authz.Principal, connID uint) (*models.NoteConnection, error) {
	var conn models.NoteConnection
	if err := s.db.First(&conn, connID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("connection not found")
		}
		return nil, err
	}
	if _, err := s.liveNote(p, conn.FromID); err != nil {
		return nil, response.NewNotFound("connection not found")
	}
	return &conn, nil
}

// liveNote loads a non-trashed note the principal may write.
func (s *ConnectionService) liveNote(p authz.Principal, noteID uint) (*models.Note, error) {
	note, err := s.notes.load(p, noteID, true)
	if err != nil {
		return nil, err
	}
	if note.IsDeleted {
		return nil, response.NewNotFound("note not found")
	}
	return note, nil
}

func sameWorkspace(a, b *models.Note) bool {
	if a.WorkspaceID == nil || b.WorkspaceID == nil {
		// Personal notes connect only within the same author's space.
		return a.WorkspaceID == nil && b.WorkspaceID == nil && a.AuthorID == b.AuthorID
	}
	return *a.WorkspaceID == *b.WorkspaceID
}

func validateConnectionStyle(style, color string) []response.FieldError {
	var details []response.FieldError
	if style != "" && !validConnectionStyles[style] {
		details = append(details, response.FieldError{Field: "style", Message: "must be SOLID, DASHED or DOTTED"})
	}
	if color != "" && !isHexColor(color) {
		details = append(details, response.FieldError{Field: "color", Message: "must be a #rrggbb color"})
	}
	return details
}
