package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
)

// StatsService produces the admin dashboard counters.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// SystemStats is the admin dashboard payload. Today buckets use the
// server's local midnight.
type SystemStats struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveUsers      int64 `json:"active_users"`
	OnlineUsers      int64 `json:"online_users"`
	NewUsersToday    int64 `json:"new_users_today"`
	TotalWorkspaces  int64 `json:"total_workspaces"`
	TotalNotes       int64 `json:"total_notes"`
	NotesToday       int64 `json:"notes_today"`
	TrashedNotes     int64 `json:"trashed_notes"`
	TotalConnections int64 `json:"total_connections"`
	ChatMessages     int64 `json:"chat_messages"`
	ChatToday        int64 `json:"chat_today"`
	Announcements    int64 `json:"announcements"`
	TotalInsights    int64 `json:"total_insights"`
	TotalFiles       int64 `json:"total_files"`
	FileBytes        int64 `json:"file_bytes"`
	SSEClients       int   `json:"sse_clients"`
}

// startOfToday returns the server's local midnight.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Get gathers all counters. Admin only.
func (s *StatsService) Get(p authz.Principal, meta RequestMeta) (*SystemStats, error) {
	if err := authz.AuthorizeGlobal(p, authz.ActionViewStats); err != nil {
		if p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "GET", "/api/admin/stats", meta)
		}
		return nil, denyError(err, "not found")
	}

	today := startOfToday()
	stats := &SystemStats{SSEClients: GetEventHub().ClientCount()}

	counts := []struct {
		dest *int64
		tx   *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.ActiveUsers, s.db.Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.OnlineUsers, s.db.Model(&models.User{}).Where("is_online = ?", true)},
		{&stats.NewUsersToday, s.db.Model(&models.User{}).Where("created_at >= ?", today)},
		{&stats.TotalWorkspaces, s.db.Model(&models.Workspace{}).Where("is_deleted = ?", false)},
		{&stats.TotalNotes, s.db.Model(&models.Note{}).Where("is_deleted = ?", false)},
		{&stats.NotesToday, s.db.Model(&models.Note{}).Where("is_deleted = ? AND created_at >= ?", false, today)},
		{&stats.TrashedNotes, s.db.Model(&models.Note{}).Where("is_deleted = ?", true)},
		{&stats.TotalConnections, s.db.Model(&models.NoteConnection{})},
		{&stats.ChatMessages, s.db.Model(&models.ChatMessage{})},
		{&stats.ChatToday, s.db.Model(&models.ChatMessage{}).Where("created_at >= ?", today)},
		{&stats.Announcements, s.db.Model(&models.Announcement{}).Where("expires_at > ?", time.Now())},
		{&stats.TotalInsights, s.db.Model(&models.AIInsight{})},
		{&stats.TotalFiles, s.db.Model(&models.File{})},
	}
	for _, c := range counts {
		if err := c.tx.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var fileBytes struct{ Total int64 }
	if err := s.db.Model(&models.File{}).
		Select("COALESCE(SUM(size), 0) AS total").
		Scan(&fileBytes).Error; err != nil {
		return nil, err
	}
	stats.FileBytes = fileBytes.Total

	return stats, nil
}
