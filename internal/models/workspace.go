package models

import "time"

// Workspace is a shared container for notes. The owner is implicitly
// privileged for every workspace action regardless of membership rows.
type Workspace struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	Color       string     `gorm:"size:7;default:#3b82f6" json:"color"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`
	IsDeleted   bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	OwnerID     uint       `gorm:"index;not null" json:"owner_id"`
	Owner       *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Members []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Notes   []Note            `gorm:"foreignKey:WorkspaceID" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Workspace) TableName() string { return "workspaces" }
