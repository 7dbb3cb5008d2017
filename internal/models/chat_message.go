package models

import "time"

// Chat message types.
const (
	ChatTypeText   = "TEXT"
	ChatTypeImage  = "IMAGE"
	ChatTypeFile   = "FILE"
	ChatTypeSystem = "SYSTEM"
)

// ChatMessage is a post in the public chat feed.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	Type      string    `gorm:"size:10;default:TEXT" json:"type"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
