package models

import "time"

// Activity types shown in recent-activity feeds.
const (
	ActivityWorkspaceCreated      = "WORKSPACE_CREATED"
	ActivityWorkspaceUpdated      = "WORKSPACE_UPDATED"
	ActivityWorkspaceDeleted      = "WORKSPACE_DELETED"
	ActivityNoteCreated           = "NOTE_CREATED"
	ActivityNoteUpdated           = "NOTE_UPDATED"
	ActivityNoteDeleted           = "NOTE_DELETED"
	ActivityUserInvited           = "USER_INVITED"
	ActivityMemberLeft            = "MEMBER_LEFT"
	ActivityChatMessage           = "CHAT_MESSAGE"
	ActivityAnnouncementCreated   = "ANNOUNCEMENT_CREATED"
	ActivitySystemSettingsUpdated = "SYSTEM_SETTINGS_UPDATED"
	ActivityMaintenanceToggled    = "MAINTENANCE_MODE_TOGGLED"
	ActivityInsightsGenerated     = "INSIGHTS_GENERATED"
)

// Activity is a user-visible history entry, created alongside most
// mutations. Append-only.
type Activity struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"size:50;index;not null" json:"type"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:500" json:"description"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkspaceID *uint      `gorm:"index" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Metadata    string     `gorm:"type:text" json:"metadata"` // JSON payload, typed per activity type
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }
