package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// defaultAnnouncementTTL is applied when the creator omits an expiry.
const defaultAnnouncementTTL = 24 * time.Hour

// AnnouncementService handles admin broadcasts.
type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// List returns live announcements, pinned first then newest. Expired ones
// are never served.
func (s *AnnouncementService) List() ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.Preload("Author").
		Where("expires_at > ?", time.Now()).
		Order("is_pinned DESC, created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

// AnnouncementRequest carries create fields. IsPinned defaults to true and
// ExpiresAt to 24 hours from now when omitted.
type AnnouncementRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content" binding:"required"`
	IsPinned  *bool      `json:"is_pinned"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Create publishes an announcement. Admin only.
func (s *AnnouncementService) Create(p authz.Principal, req AnnouncementRequest, meta RequestMeta) (*models.Announcement, error) {
	if err := authz.AuthorizeGlobal(p, authz.ActionCreateAnnouncement); err != nil {
		if p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "POST", "/api/announcements", meta)
		}
		return nil, denyError(err, "not found")
	}

	var details []response.FieldError
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if n := utf8.RuneCountInString(title); n < 1 || n > 200 {
		details = append(details, response.FieldError{Field: "title", Message: "must be 1-200 characters"})
	}
	if n := utf8.RuneCountInString(content); n < 1 || n > 2000 {
		details = append(details, response.FieldError{Field: "content", Message: "must be 1-2000 characters"})
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		details = append(details, response.FieldError{Field: "expires_at", Message: "must be in the future"})
	}
	if len(details) > 0 {
		return nil, response.NewInvalidInput("invalid announcement", details...)
	}

	announcement := models.Announcement{
		Title:     title,
		Content:   content,
		IsPinned:  true,
		ExpiresAt: time.Now().Add(defaultAnnouncementTTL),
		AuthorID:  p.UserID,
	}
	if req.IsPinned != nil {
		announcement.IsPinned = *req.IsPinned
	}
	if req.ExpiresAt != nil {
		announcement.ExpiresAt = *req.ExpiresAt
	}

	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	RecordActivity(models.ActivityAnnouncementCreated,
		"Announcement: "+announcement.Title, "", p.UserID, nil, nil)
	GetEventHub().Publish(Event{Type: "announcement", Payload: announcement})
	return &announcement, nil
}
