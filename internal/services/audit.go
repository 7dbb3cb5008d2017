package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/logger"
)

// EndpointDetails records which endpoint an audit entry refers to.
type EndpointDetails struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
	Body     string `json:"body,omitempty"`
}

// RoleChangeDetails records a privileged role transition.
type RoleChangeDetails struct {
	TargetUserID uint   `json:"targetUserId"`
	OldRole      string `json:"oldRole"`
	NewRole      string `json:"newRole"`
}

// SettingsChangeDetails lists the settings fields an admin changed.
type SettingsChangeDetails struct {
	Changed []string `json:"changed"`
}

var auditDB *gorm.DB

// InitAuditLogger wires the global audit writer. Call once at startup.
func InitAuditLogger(db *gorm.DB) {
	auditDB = db
}

// RecordAudit persists an audit entry. Writes are best-effort: a failure is
// logged and never propagated to the caller's request path.
func RecordAudit(actorID *uint, action, resource string, resourceID *uint, details interface{}, meta RequestMeta) {
	if auditDB == nil {
		return
	}
	var detailsJSON string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}
	entry := models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    detailsJSON,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if err := auditDB.Create(&entry).Error; err != nil {
		logger.Errorf("audit write failed: action=%s resource=%s err=%v", action, resource, err)
	}
}

// RecordUnauthorizedAccess logs a denied attempt at a privileged endpoint.
func RecordUnauthorizedAccess(actorID *uint, method, endpoint string, meta RequestMeta) {
	RecordAudit(actorID, models.AuditUnauthorizedAccess, endpoint, nil,
		EndpointDetails{Method: method, Endpoint: endpoint}, meta)
}

// AuditQuery filters audit log listings.
type AuditQuery struct {
	Page     int
	PageSize int
	Action   string
	ActorID  *uint
}

// ListAuditLogs returns audit entries newest first.
func ListAuditLogs(db *gorm.DB, q AuditQuery) ([]models.AuditLog, int64, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)

	tx := db.Model(&models.AuditLog{})
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.ActorID != nil {
		tx = tx.Where("actor_id = ?", *q.ActorID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	return logs, total, err
}
