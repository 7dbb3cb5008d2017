package models

import (
	"time"

	"gorm.io/gorm"
)

// Global user roles, ordered USER < MODERATOR < ADMIN.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// User represents an account. Role is only ever mutated by an admin, and
// never by the account itself.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Name       string         `gorm:"size:100" json:"name"`
	Avatar     string         `gorm:"size:500" json:"avatar"`
	Bio        string         `gorm:"size:500" json:"bio"`
	Role       string         `gorm:"size:20;default:USER;index" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	IsOnline   bool           `gorm:"default:false" json:"is_online"`
	Balance    float64        `gorm:"default:10000" json:"balance"`
	Level      int            `gorm:"default:1" json:"level"`
	Experience int            `gorm:"default:0" json:"experience"`
	LastLogin  *time.Time     `json:"last_login"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// PublicUser is the author shape embedded in responses.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	IsOnline bool   `json:"is_online"`
}

// Public strips private fields for embedding in other payloads.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Role:     u.Role,
		IsOnline: u.IsOnline,
	}
}
