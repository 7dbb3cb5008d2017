package models

import "time"

// File holds upload metadata so admin stats can report counts and total
// size. The upload transport itself lives outside this service.
type File struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Size        int64      `gorm:"not null" json:"size"`
	MimeType    string     `gorm:"size:100" json:"mime_type"`
	OwnerID     uint       `gorm:"index;not null" json:"owner_id"`
	Owner       *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	WorkspaceID *uint      `gorm:"index" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (File) TableName() string { return "files" }
