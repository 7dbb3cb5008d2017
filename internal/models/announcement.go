package models

import "time"

// Announcement is an admin broadcast. Defaults: pinned, expires 24h after
// creation.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"size:2000;not null" json:"content"`
	IsPinned  bool      `gorm:"default:true" json:"is_pinned"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Announcement) TableName() string { return "announcements" }
