package models

import "time"

// SystemSettings is a singleton row (at most one instance), lazily created
// with defaults on first read. Always read fresh from the database so
// horizontally scaled instances never serve stale maintenance state.
type SystemSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	MaintenanceMode      bool      `gorm:"default:false" json:"maintenance_mode"`
	MaintenanceMessage   string    `gorm:"size:500" json:"maintenance_message"`
	MaxFileSize          int64     `gorm:"default:10485760" json:"max_file_size"` // bytes, 1KB-100MB
	AllowedFileTypes     string    `gorm:"size:500;default:image/png,image/jpeg,application/pdf" json:"allowed_file_types"`
	MaxWorkspacesPerUser int       `gorm:"default:10" json:"max_workspaces_per_user"`
	MaxNotesPerWorkspace int       `gorm:"default:1000" json:"max_notes_per_workspace"`
	ChatRetentionDays    int       `gorm:"default:30" json:"chat_retention_days"`
	TrashRetentionHours  int       `gorm:"default:72" json:"trash_retention_hours"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (SystemSettings) TableName() string { return "system_settings" }
