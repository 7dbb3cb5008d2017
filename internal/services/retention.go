package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/logger"
)

// RetentionService runs the scheduled cleanup: old chat messages, expired
// trash, expired announcements. Settings are re-read on every run so an
// admin change takes effect without a restart.
type RetentionService struct {
	db            *gorm.DB
	cronScheduler *cron.Cron
}

func NewRetentionService(db *gorm.DB) *RetentionService {
	return &RetentionService{db: db}
}

// StartScheduler registers the nightly cleanup at 03:00 server time.
func (s *RetentionService) StartScheduler() {
	s.cronScheduler = cron.New()

	if _, err := s.cronScheduler.AddFunc("0 3 * * *", func() {
		if err := s.Cleanup(); err != nil {
			logger.Errorf("[Retention] Cleanup run failed: %v", err)
		}
	}); err != nil {
		logger.Errorf("[Retention] Failed to schedule cleanup: %v", err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Retention] Scheduler started")
}

func (s *RetentionService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// CleanupReport summarizes one cleanup run.
type CleanupReport struct {
	ChatMessagesDeleted  int64 `json:"chat_messages_deleted"`
	NotesPurged          int64 `json:"notes_purged"`
	ConnectionsPurged    int64 `json:"connections_purged"`
	AnnouncementsExpired int64 `json:"announcements_expired"`
	TokensPurged         int64 `json:"tokens_purged"`
}

// Cleanup applies the retention policy once. Safe to invoke manually.
func (s *RetentionService) Cleanup() error {
	settings, err := GetSystemSettings(s.db)
	if err != nil {
		return fmt.Errorf("retention settings load failed: %w", err)
	}

	now := time.Now()
	report := CleanupReport{}

	chatCutoff := now.AddDate(0, 0, -settings.ChatRetentionDays)
	res := s.db.Where("created_at < ?", chatCutoff).Delete(&models.ChatMessage{})
	if res.Error != nil {
		return res.Error
	}
	report.ChatMessagesDeleted = res.RowsAffected

	// Purge trashed notes past the retention window, connections first so
	// no dangling edges survive.
	trashCutoff := now.Add(-time.Duration(settings.TrashRetentionHours) * time.Hour)
	expired := s.db.Model(&models.Note{}).Select("id").
		Where("is_deleted = ? AND deleted_at < ?", true, trashCutoff)

	res = s.db.Where("from_id IN (?) OR to_id IN (?)", expired, expired).
		Delete(&models.NoteConnection{})
	if res.Error != nil {
		return res.Error
	}
	report.ConnectionsPurged = res.RowsAffected

	res = s.db.Where("is_deleted = ? AND deleted_at < ?", true, trashCutoff).
		Delete(&models.Note{})
	if res.Error != nil {
		return res.Error
	}
	report.NotesPurged = res.RowsAffected

	// Expired unpinned announcements are gone for good; pinned ones stay
	// until an admin takes them down.
	res = s.db.Where("expires_at < ? AND is_pinned = ?", now, false).
		Delete(&models.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	report.AnnouncementsExpired = res.RowsAffected

	res = s.db.Where("expires_at < ?", now.AddDate(0, 0, -7)).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	report.TokensPurged = res.RowsAffected

	logger.Infof("[Retention] Cleanup complete: chat=%d notes=%d connections=%d announcements=%d tokens=%d",
		report.ChatMessagesDeleted, report.NotesPurged, report.ConnectionsPurged,
		report.AnnouncementsExpired, report.TokensPurged)
	return nil
}
