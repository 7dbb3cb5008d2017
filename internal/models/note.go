package models

import "time"

// Note content types.
const (
	NoteTypeText     = "TEXT"
	NoteTypeRichText = "RICH_TEXT"
	NoteTypeCode     = "CODE"
	NoteTypeMarkdown = "MARKDOWN"
)

// Note belongs to an author and optionally to a workspace. Soft deleted via
// IsDeleted/DeletedAt so the trash retention job can purge it later.
// X/Y/Width/Height position the note on the freeform canvas.
type Note struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Type        string     `gorm:"size:20;default:TEXT" json:"type"`
	Color       string     `gorm:"size:7" json:"color"`
	X           float64    `gorm:"default:0" json:"x"`
	Y           float64    `gorm:"default:0" json:"y"`
	Width       float64    `gorm:"default:200" json:"width"`
	Height      float64    `gorm:"default:150" json:"height"`
	IsPinned    bool       `gorm:"default:false" json:"is_pinned"`
	IsDeleted   bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	WorkspaceID *uint      `gorm:"index" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Note) TableName() string { return "notes" }
