package models

import "time"

// AI insight types.
const (
	InsightSummary     = "SUMMARY"
	InsightImprovement = "IMPROVEMENT"
	InsightPattern     = "PATTERN"
	InsightDuplicate   = "DUPLICATE"
)

// AIInsight is owned by the requesting user. Only IsRead is mutable;
// deletion is restricted to the owner.
type AIInsight struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"size:20;index;not null" json:"type"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Confidence  float64    `gorm:"default:0" json:"confidence"`
	Metadata    string     `gorm:"type:text" json:"metadata"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkspaceID *uint      `gorm:"index" json:"workspace_id"`
	NoteID      *uint      `gorm:"index" json:"note_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (AIInsight) TableName() string { return "ai_insights" }
