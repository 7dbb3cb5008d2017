package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// AdminUserService handles the admin/moderator user directory.
type AdminUserService struct {
	db *gorm.DB
}

func NewAdminUserService(db *gorm.DB) *AdminUserService {
	return &AdminUserService{db: db}
}

// UserQuery filters the directory listing.
type UserQuery struct {
	Page     int
	PageSize int
	Search   string // matches username, email or name
	Role     string
	IsActive *bool
}

// UserPage is a paginated directory slice.
type UserPage struct {
	Users    []models.User `json:"users"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// List returns the user directory. Moderator or above.
func (s *AdminUserService) List(p authz.Principal, q UserQuery, meta RequestMeta) (*UserPage, error) {
	if err := authz.AuthorizeGlobal(p, authz.ActionListUsers); err != nil {
		if p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "GET", "/api/admin/users", meta)
		}
		return nil, denyError(err, "not found")
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	tx := s.db.Model(&models.User{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ? OR name LIKE ?", pattern, pattern, pattern)
	}
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return &UserPage{Users: users, Total: total, Page: page, PageSize: pageSize}, nil
}

// UserUpdateRequest carries the admin-mutable account fields.
type UserUpdateRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Update changes a user's role or active flag. Admin only; changing one's
// own role is rejected outright so an admin cannot lock themselves out.
func (s *AdminUserService) Update(p authz.Principal, targetID uint, req UserUpdateRequest, meta RequestMeta) (*models.User, error) {
	if err := authz.AuthorizeRoleChange(p, targetID); err != nil {
		if errors.Is(err, authz.ErrForbidden) && p.Authenticated() {
			actor := p.UserID
			RecordUnauthorizedAccess(&actor, "PUT", "/api/admin/users", meta)
		}
		return nil, denyError(err, "user not found")
	}

	if req.Role != nil {
		if _, ok := authz.ParseRole(*req.Role); !ok {
			return nil, response.NewInvalidInput("invalid role",
				response.FieldError{Field: "role", Message: "must be USER, MODERATOR or ADMIN"})
		}
	}

	var user models.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	actor := p.UserID
	updates := map[string]interface{}{}
	if req.Role != nil && *req.Role != user.Role {
		updates["role"] = *req.Role
		RecordAudit(&actor, models.AuditUserRoleChanged, "user", &user.ID,
			RoleChangeDetails{TargetUserID: user.ID, OldRole: user.Role, NewRole: *req.Role}, meta)
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		updates["is_active"] = *req.IsActive
		if !*req.IsActive {
			RecordAudit(&actor, models.AuditUserDeactivated, "user", &user.ID, nil, meta)
		}
	}

	if len(updates) == 0 {
		return &user, nil
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Deactivation also kills outstanding sessions.
	if active, ok := updates["is_active"].(bool); ok && !active {
		s.db.Model(&models.RefreshToken{}).
			Where("user_id = ? AND revoked_at IS NULL", user.ID).
			Update("revoked_at", nowPtr())
	}

	if err := s.db.First(&user, targetID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
