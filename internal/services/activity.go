package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/logger"
)

var activityDB *gorm.DB

// InitActivityLogger wires the global activity writer. Call once at startup.
func InitActivityLogger(db *gorm.DB) {
	activityDB = db
}

// RecordActivity appends a feed entry and broadcasts it to live listeners.
// Best-effort like audit writes.
func RecordActivity(activityType, title, description string, userID uint, workspaceID *uint, metadata interface{}) {
	if activityDB == nil {
		return
	}
	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}
	entry := models.Activity{
		Type:        activityType,
		Title:       title,
		Description: description,
		UserID:      userID,
		WorkspaceID: workspaceID,
		Metadata:    metaJSON,
	}
	if err := activityDB.Create(&entry).Error; err != nil {
		logger.Errorf("activity write failed: type=%s err=%v", activityType, err)
		return
	}
	GetEventHub().Publish(Event{Type: "activity", Payload: entry})
}

// ListActivities returns the newest feed entries visible to the caller:
// their own plus those of workspaces they can see.
func ListActivities(db *gorm.DB, userID uint, workspaceID *uint, limit int) ([]models.Activity, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := db.Model(&models.Activity{}).Preload("User")
	if workspaceID != nil {
		tx = tx.Where("workspace_id = ?", *workspaceID)
	} else {
		tx = tx.Where(
			"user_id = ? OR workspace_id IN (?)",
			userID,
			db.Model(&models.WorkspaceMember{}).Select("workspace_id").Where("user_id = ?", userID),
		)
	}

	var activities []models.Activity
	err := tx.Order("created_at DESC").Limit(limit).Find(&activities).Error
	return activities, err
}
