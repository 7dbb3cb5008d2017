package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// NoteService manages notes and their trash lifecycle.
type NoteService struct {
	db         *gorm.DB
	workspaces *WorkspaceService
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db, workspaces: NewWorkspaceService(db)}
}

var validNoteTypes = map[string]bool{
	models.NoteTypeText:     true,
	models.NoteTypeRichText: true,
	models.NoteTypeCode:     true,
	models.NoteTypeMarkdown: true,
}

// NoteRequest carries create/update fields.
type NoteRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	IsPinned    *bool    `json:"is_pinned"`
	WorkspaceID *uint    `json:"workspace_id"`
}

func (r *NoteRequest) validate() []response.FieldError {
	var details []response.FieldError
	title := strings.TrimSpace(r.Title)
	if n := utf8.RuneCountInString(title); n < 1 || n > 200 {
		details = append(details, response.FieldError{Field: "title", Message: "must be 1-200 characters"})
	}
	if r.Type != "" && !validNoteTypes[r.Type] {
		details = append(details, response.FieldError{Field: "type", Message: "must be TEXT, RICH_TEXT, CODE or MARKDOWN"})
	}
	if r.Color != "" && !isHexColor(r.Color) {
		details = append(details, response.FieldError{Field: "color", Message: "must be a #rrggbb color"})
	}
	return details
}

// visibleTo scopes a query to notes the principal may see: their own plus
// notes of workspaces they can view.
func (s *NoteService) visibleTo(p authz.Principal) *gorm.DB {
	return s.db.Where(
		"author_id = ? OR workspace_id IN (?) OR workspace_id IN (?)",
		p.UserID,
		s.db.Model(&models.WorkspaceMember{}).Select("workspace_id").Where("user_id = ?", p.UserID),
		s.db.Model(&models.Workspace{}).Select("id").Where("is_public = ? AND is_deleted = ?", true, false),
	)
}

// NoteQuery filters note listings.
type NoteQuery struct {
	WorkspaceID *uint
	Trash       bool // list the principal's own trashed notes instead
	Search      string
}

// List returns notes visible to the principal, newest first. With a
// workspace filter the workspace view check runs first so a private
// workspace stays opaque.
func (s *NoteService) List(p authz.Principal, q NoteQuery) ([]models.Note, error) {
	tx := s.db.Model(&models.Note{}).Preload("Author")

	if q.Trash {
		tx = tx.Where("author_id = ? AND is_deleted = ?", p.UserID, true)
	} else {
		if q.WorkspaceID != nil {
			if _, err := s.workspaces.authorize(p, authz.WorkspaceView, *q.WorkspaceID); err != nil {
				return nil, err
			}
			tx = tx.Where("workspace_id = ?", *q.WorkspaceID)
		} else {
			tx = tx.Where(s.visibleTo(p))
		}
		tx = tx.Where("is_deleted = ?", false)
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var notes []models.Note
	err := tx.Order("is_pinned DESC, updated_at DESC").Find(&notes).Error
	return notes, err
}

// Create makes a note, enforcing the per-workspace cap when the note is
// workspace scoped.
func (s *NoteService) Create(p authz.Principal, req NoteRequest) (*models.Note, error) {
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid note", details...)
	}

	if req.WorkspaceID != nil {
		if _, err := s.workspaces.authorize(p, authz.WorkspaceNoteWrite, *req.WorkspaceID); err != nil {
			return nil, err
		}
		settings, err := GetSystemSettings(s.db)
		if err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.Model(&models.Note{}).
			Where("workspace_id = ? AND is_deleted = ?", *req.WorkspaceID, false).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(settings.MaxNotesPerWorkspace) {
			return nil, response.NewInvalidInput(
				fmt.Sprintf("note limit reached (%d per workspace)", settings.MaxNotesPerWorkspace))
		}
	}

	note := models.Note{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		AuthorID:    p.UserID,
		WorkspaceID: req.WorkspaceID,
	}
	if req.Type != "" {
		note.Type = req.Type
	}
	if req.Color != "" {
		note.Color = req.Color
	}
	applyCanvas(&note, req)

	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}

	RecordActivity(models.ActivityNoteCreated,
		fmt.Sprintf("Note %q created", note.Title), "", p.UserID, note.WorkspaceID, nil)
	return &note, nil
}

// load fetches a note and verifies the principal may act on it. Writers
// must be the author or hold note-write in the note's workspace.
func (s *NoteService) load(p authz.Principal, noteID uint, write bool) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("note not found")
		}
		return nil, err
	}

	if note.AuthorID == p.UserID {
		return &note, nil
	}
	if note.WorkspaceID == nil {
		// Personal note of another user: opaque.
		return nil, response.NewNotFound("note not found")
	}

	action := authz.WorkspaceView
	if write {
		action = authz.WorkspaceNoteWrite
	}
	if _, err := s.workspaces.authorize(p, action, *note.WorkspaceID); err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == 404 {
			return nil, response.NewNotFound("note not found")
		}
		return nil, err
	}
	return &note, nil
}

// Get returns a single visible, live note.
func (s *NoteService) Get(p authz.Principal, noteID uint) (*models.Note, error) {
	note, err := s.load(p, noteID, false)
	if err != nil {
		return nil, err
	}
	if note.IsDeleted {
		return nil, response.NewNotFound("note not found")
	}
	return note, nil
}

// Update edits a live note.
func (s *NoteService) Update(p authz.Principal, noteID uint, req NoteRequest) (*models.Note, error) {
	note, err := s.load(p, noteID, true)
	if err != nil {
		return nil, err
	}
	if note.IsDeleted {
		return nil, response.NewNotFound("note not found")
	}
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid note", details...)
	}

	note.Title = strings.TrimSpace(req.Title)
	note.Content = req.Content
	if req.Type != "" {
		note.Type = req.Type
	}
	if req.Color != "" {
		note.Color = req.Color
	}
	applyCanvas(note, req)

	if err := s.db.Save(note).Error; err != nil {
		return nil, err
	}

	RecordActivity(models.ActivityNoteUpdated,
		fmt.Sprintf("Note %q updated", note.Title), "", p.UserID, note.WorkspaceID, nil)
	return note, nil
}

// Delete moves a note to the trash. The retention job purges it later.
func (s *NoteService) Delete(p authz.Principal, noteID uint) error {
	note, err := s.load(p, noteID, true)
	if err != nil {
		return err
	}
	if note.IsDeleted {
		return response.NewNotFound("note not found")
	}

	if err := s.db.Model(note).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": nowPtr(),
	}).Error; err != nil {
		return err
	}

	RecordActivity(models.ActivityNoteDeleted,
		fmt.Sprintf("Note %q moved to trash", note.Title), "", p.UserID, note.WorkspaceID, nil)
	return nil
}

// Restore recovers a trashed note.
func (s *NoteService) Restore(p authz.Principal, noteID uint) (*models.Note, error) {
	note, err := s.load(p, noteID, true)
	if err != nil {
		return nil, err
	}
	if !note.IsDeleted {
		return nil, response.NewInvalidInput("note is not in the trash")
	}

	if err := s.db.Model(note).Updates(map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	}).Error; err != nil {
		return nil, err
	}
	note.IsDeleted = false
	note.DeletedAt = nil
	return note, nil
}

func applyCanvas(note *models.Note, req NoteRequest) {
	if req.X != nil {
		note.X = *req.X
	}
	if req.Y != nil {
		note.Y = *req.Y
	}
	if req.Width != nil {
		note.Width = *req.Width
	}
	if req.Height != nil {
		note.Height = *req.Height
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
}
