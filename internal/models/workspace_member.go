package models

import "time"

// Workspace-scoped roles, ordered MEMBER < ADMIN < OWNER.
// Distinct from the global user role.
const (
	MemberRoleOwner  = "OWNER"
	MemberRoleAdmin  = "ADMIN"
	MemberRoleMember = "MEMBER"
)

// WorkspaceMember joins a user to a workspace with a role.
// One row per (workspace, user); the creator gets an OWNER row.
type WorkspaceMember struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"uniqueIndex:idx_workspace_user;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	UserID      uint       `gorm:"uniqueIndex:idx_workspace_user;not null" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role        string     `gorm:"size:20;default:MEMBER" json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (WorkspaceMember) TableName() string { return "workspace_members" }
