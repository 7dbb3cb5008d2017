package models

import "time"

// Audit actions recorded for privileged or denied operations.
const (
	AuditUnauthorizedAccess    = "UNAUTHORIZED_ACCESS_ATTEMPT"
	AuditSystemSettingsUpdated = "SYSTEM_SETTINGS_UPDATED"
	AuditUserRoleChanged       = "USER_ROLE_CHANGED"
	AuditUserDeactivated       = "USER_DEACTIVATED"
	AuditAdminWrite            = "ADMIN_WRITE"
)

// AuditLog is append-only and immutable once written. Writes are
// best-effort after the primary mutation commits; a failed audit write is
// logged operationally, never surfaced to the caller.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    *uint     `gorm:"index" json:"actor_id"`
	Action     string    `gorm:"size:100;index;not null" json:"action"`
	Resource   string    `gorm:"size:100;index" json:"resource"`
	ResourceID *uint     `json:"resource_id"`
	Details    string    `gorm:"type:text" json:"details"` // JSON payload, typed per action
	IPAddress  string    `gorm:"size:50" json:"ip_address"`
	UserAgent  string    `gorm:"size:500" json:"user_agent"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
