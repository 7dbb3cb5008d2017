package models

import "time"

// Connection line styles.
const (
	ConnectionStyleSolid  = "SOLID"
	ConnectionStyleDashed = "DASHED"
	ConnectionStyleDotted = "DOTTED"
)

// NoteConnection is a directed edge between two notes of the same workspace.
// The (from_id, to_id) unique index is the enforcement boundary for
// duplicates; the application pre-check only exists for a friendly 409.
type NoteConnection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromID    uint      `gorm:"uniqueIndex:idx_from_to;not null" json:"from_id"`
	FromNote  *Note     `gorm:"foreignKey:FromID" json:"from_note,omitempty"`
	ToID      uint      `gorm:"uniqueIndex:idx_from_to;not null" json:"to_id"`
	ToNote    *Note     `gorm:"foreignKey:ToID" json:"to_note,omitempty"`
	Label     string    `gorm:"size:100" json:"label"`
	Color     string    `gorm:"size:7;default:#6b7280" json:"color"`
	Style     string    `gorm:"size:10;default:SOLID" json:"style"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NoteConnection) TableName() string { return "note_connections" }
