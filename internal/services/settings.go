package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// Bounds for admin-tunable settings.
const (
	minFileSizeBytes = 1024              // 1 KB
	maxFileSizeBytes = 100 * 1024 * 1024 // 100 MB

	minWorkspacesPerUser = 1
	maxWorkspacesPerUser = 100

	minNotesPerWorkspace = 10
	maxNotesPerWorkspace = 10000

	minChatRetentionDays = 1
	maxChatRetentionDays = 365

	minTrashRetentionHours = 1
	maxTrashRetentionHours = 168
)

// GetSystemSettings returns the singleton settings row, creating it with
// defaults on first access. Always hits the database: maintenance state
// must be current across instances.
func GetSystemSettings(db *gorm.DB) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SystemSettings{}
		if err := db.Create(&settings).Error; err != nil {
			// A concurrent creator may have won; re-read.
			if err2 := db.First(&settings).Error; err2 != nil {
				return nil, err
			}
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SettingsService handles admin reads and updates of system settings.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the settings for an admin.
func (s *SettingsService) Get(p authz.Principal, meta RequestMeta) (*models.SystemSettings, error) {
	if err := authz.AuthorizeGlobal(p, authz.ActionViewSettings); err != nil {
		if p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "GET", "/api/admin/settings", meta)
		}
		return nil, denyError(err, "not found")
	}
	return GetSystemSettings(s.db)
}

// SettingsUpdateRequest carries partial updates; nil fields are untouched.
type SettingsUpdateRequest struct {
	MaintenanceMode      *bool   `json:"maintenance_mode"`
	MaintenanceMessage   *string `json:"maintenance_message"`
	MaxFileSize          *int64  `json:"max_file_size"`
	AllowedFileTypes     *string `json:"allowed_file_types"`
	MaxWorkspacesPerUser *int    `json:"max_workspaces_per_user"`
	MaxNotesPerWorkspace *int    `json:"max_notes_per_workspace"`
	ChatRetentionDays    *int    `json:"chat_retention_days"`
	TrashRetentionHours  *int    `json:"trash_retention_hours"`
}

func (r *SettingsUpdateRequest) validate() []response.FieldError {
	var details []response.FieldError
	outOfRange := func(field string, lo, hi int64) {
		details = append(details, response.FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", lo, hi),
		})
	}
	if r.MaxFileSize != nil && (*r.MaxFileSize < minFileSizeBytes || *r.MaxFileSize > maxFileSizeBytes) {
		outOfRange("max_file_size", minFileSizeBytes, maxFileSizeBytes)
	}
	if r.MaxWorkspacesPerUser != nil && (*r.MaxWorkspacesPerUser < minWorkspacesPerUser || *r.MaxWorkspacesPerUser > maxWorkspacesPerUser) {
		outOfRange("max_workspaces_per_user", minWorkspacesPerUser, maxWorkspacesPerUser)
	}
	if r.MaxNotesPerWorkspace != nil && (*r.MaxNotesPerWorkspace < minNotesPerWorkspace || *r.MaxNotesPerWorkspace > maxNotesPerWorkspace) {
		outOfRange("max_notes_per_workspace", minNotesPerWorkspace, maxNotesPerWorkspace)
	}
	if r.ChatRetentionDays != nil && (*r.ChatRetentionDays < minChatRetentionDays || *r.ChatRetentionDays > maxChatRetentionDays) {
		outOfRange("chat_retention_days", minChatRetentionDays, maxChatRetentionDays)
	}
	if r.TrashRetentionHours != nil && (*r.TrashRetentionHours < minTrashRetentionHours || *r.TrashRetentionHours > maxTrashRetentionHours) {
		outOfRange("trash_retention_hours", minTrashRetentionHours, maxTrashRetentionHours)
	}
	if r.MaintenanceMessage != nil && utf8.RuneCountInString(*r.MaintenanceMessage) > 500 {
		details = append(details, response.FieldError{Field: "maintenance_message", Message: "must be at most 500 characters"})
	}
	return details
}

// Update applies a partial settings change, audits it, and records an
// activity entry when maintenance mode flips.
func (s *SettingsService) Update(p authz.Principal, req SettingsUpdateRequest, meta RequestMeta) (*models.SystemSettings, error) {
	if err := authz.AuthorizeGlobal(p, authz.ActionUpdateSettings); err != nil {
		if p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "PUT", "/api/admin/settings", meta)
		}
		return nil, denyError(err, "not found")
	}
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid settings", details...)
	}

	settings, err := GetSystemSettings(s.db)
	if err != nil {
		return nil, err
	}

	maintenanceWas := settings.MaintenanceMode
	updates := map[string]interface{}{}
	var changed []string
	set := func(field string, value interface{}) {
		updates[field] = value
		changed = append(changed, field)
	}

	if req.MaintenanceMode != nil {
		set("maintenance_mode", *req.MaintenanceMode)
	}
	if req.MaintenanceMessage != nil {
		set("maintenance_message", *req.MaintenanceMessage)
	}
	if req.MaxFileSize != nil {
		set("max_file_size", *req.MaxFileSize)
	}
	if req.AllowedFileTypes != nil {
		set("allowed_file_types", *req.AllowedFileTypes)
	}
	if req.MaxWorkspacesPerUser != nil {
		set("max_workspaces_per_user", *req.MaxWorkspacesPerUser)
	}
	if req.MaxNotesPerWorkspace != nil {
		set("max_notes_per_workspace", *req.MaxNotesPerWorkspace)
	}
	if req.ChatRetentionDays != nil {
		set("chat_retention_days", *req.ChatRetentionDays)
	}
	if req.TrashRetentionHours != nil {
		set("trash_retention_hours", *req.TrashRetentionHours)
	}

	if len(updates) == 0 {
		return settings, nil
	}
	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	actor := p.UserID
	RecordAudit(&actor, models.AuditSystemSettingsUpdated, "system_settings", &settings.ID,
		SettingsChangeDetails{Changed: changed}, meta)

	if req.MaintenanceMode != nil && *req.MaintenanceMode != maintenanceWas {
		state := "disabled"
		if *req.MaintenanceMode {
			state = "enabled"
		}
		RecordActivity(models.ActivityMaintenanceToggled,
			"Maintenance mode "+state, "", p.UserID, nil, nil)
	} else {
		RecordActivity(models.ActivitySystemSettingsUpdated,
			"System settings updated", "", p.UserID, nil, nil)
	}

	return GetSystemSettings(s.db)
}
