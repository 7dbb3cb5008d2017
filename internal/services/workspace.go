package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// WorkspaceService manages workspaces and their membership.
type WorkspaceService struct {
	db *gorm.DB
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

// loadRef fetches a live workspace plus the principal's membership facts.
// Deleted and unknown workspaces are indistinguishable to the caller.
func (s *WorkspaceService) loadRef(p authz.Principal, workspaceID uint) (*models.Workspace, authz.WorkspaceRef, error) {
	var ws models.Workspace
	err := s.db.Where("id = ? AND is_deleted = ?", workspaceID, false).First(&ws).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authz.WorkspaceRef{}, authz.ErrNotFound
		}
		return nil, authz.WorkspaceRef{}, err
	}

	ref := authz.WorkspaceRef{OwnerID: ws.OwnerID, IsPublic: ws.IsPublic}
	var member models.WorkspaceMember
	err = s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, p.UserID).First(&member).Error
	if err == nil {
		if role, ok := authz.ParseMemberRole(member.Role); ok {
			ref.Membership = &role
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authz.WorkspaceRef{}, err
	}
	return &ws, ref, nil
}

// authorize runs the workspace permission check and maps denials onto the
// opaque HTTP taxonomy.
func (s *WorkspaceService) authorize(p authz.Principal, action authz.WorkspaceAction, workspaceID uint) (*models.Workspace, error) {
	ws, ref, err := s.loadRef(p, workspaceID)
	if err != nil {
		return nil, denyError(err, "workspace not found")
	}
	if err := authz.AuthorizeWorkspace(p, action, ref); err != nil {
		return nil, denyError(err, "workspace not found")
	}
	return ws, nil
}

// List returns all live workspaces the principal owns or belongs to.
func (s *WorkspaceService) List(p authz.Principal) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.db.
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		Where("is_deleted = ?", false).
		Where(
			"owner_id = ? OR id IN (?)",
			p.UserID,
			s.db.Model(&models.WorkspaceMember{}).Select("workspace_id").Where("user_id = ?", p.UserID),
		).
		Order("updated_at DESC").
		Find(&workspaces).Error
	return workspaces, err
}

// WorkspaceRequest carries create/update fields.
type WorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsPublic    *bool  `json:"is_public"`
}

func (r *WorkspaceRequest) validate() []response.FieldError {
	var details []response.FieldError
	name := strings.TrimSpace(r.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		details = append(details, response.FieldError{Field: "name", Message: "must be 1-100 characters"})
	}
	if utf8.RuneCountInString(r.Description) > 500 {
		details = append(details, response.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}
	if r.Color != "" && !isHexColor(r.Color) {
		details = append(details, response.FieldError{Field: "color", Message: "must be a #rrggbb color"})
	}
	return details
}

// Create makes a workspace with the principal as owner, bounded by the
// per-user workspace cap from system settings.
func (s *WorkspaceService) Create(p authz.Principal, req WorkspaceRequest) (*models.Workspace, error) {
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid workspace", details...)
	}

	settings, err := GetSystemSettings(s.db)
	if err != nil {
		return nil, err
	}
	var owned int64
	if err := s.db.Model(&models.Workspace{}).
		Where("owner_id = ? AND is_deleted = ?", p.UserID, false).
		Count(&owned).Error; err != nil {
		return nil, err
	}
	if owned >= int64(settings.MaxWorkspacesPerUser) {
		return nil, response.NewInvalidInput(
			fmt.Sprintf("workspace limit reached (%d per user)", settings.MaxWorkspacesPerUser))
	}

	ws := models.Workspace{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     p.UserID,
	}
	if req.Color != "" {
		ws.Color = req.Color
	}
	if req.IsPublic != nil {
		ws.IsPublic = *req.IsPublic
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ws).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      p.UserID,
			Role:        models.MemberRoleOwner,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	RecordActivity(models.ActivityWorkspaceCreated,
		fmt.Sprintf("Workspace %q created", ws.Name), "", p.UserID, &ws.ID, nil)
	return &ws, nil
}

// Get loads a workspace the principal can view, with members and owner.
func (s *WorkspaceService) Get(p authz.Principal, workspaceID uint) (*models.Workspace, error) {
	if _, err := s.authorize(p, authz.WorkspaceView, workspaceID); err != nil {
		return nil, err
	}
	var ws models.Workspace
	err := s.db.
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		First(&ws, workspaceID).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// Update edits workspace metadata. Requires workspace admin.
func (s *WorkspaceService) Update(p authz.Principal, workspaceID uint, req WorkspaceRequest) (*models.Workspace, error) {
	ws, err := s.authorize(p, authz.WorkspaceEdit, workspaceID)
	if err != nil {
		return nil, err
	}
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid workspace", details...)
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if err := s.db.Model(ws).Updates(updates).Error; err != nil {
		return nil, err
	}

	RecordActivity(models.ActivityWorkspaceUpdated,
		fmt.Sprintf("Workspace %q updated", ws.Name), "", p.UserID, &ws.ID, nil)
	return ws, nil
}

// Delete soft-deletes a workspace. Owner only; notes stay attached so the
// retention job can purge them with the workspace.
func (s *WorkspaceService) Delete(p authz.Principal, workspaceID uint) error {
	ws, err := s.authorize(p, authz.WorkspaceDelete, workspaceID)
	if err != nil {
		return err
	}

	now := nowPtr()
	if err := s.db.Model(ws).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		return err
	}

	RecordActivity(models.ActivityWorkspaceDeleted,
		fmt.Sprintf("Workspace %q deleted", ws.Name), "", p.UserID, &ws.ID, nil)
	return nil
}

// InviteRequest adds a member by email.
type InviteRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

// Invite adds a user to the workspace by email. Requires workspace admin.
// Inviting an existing member is a 400, an unknown email a 404.
func (s *WorkspaceService) Invite(p authz.Principal, workspaceID uint, req InviteRequest) (*models.WorkspaceMember, error) {
	ws, err := s.authorize(p, authz.WorkspaceInvite, workspaceID)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.MemberRoleMember
	}
	if role != models.MemberRoleMember && role != models.MemberRoleAdmin {
		return nil, response.NewInvalidInput("invalid member role",
			response.FieldError{Field: "role", Message: "must be MEMBER or ADMIN"})
	}

	var invitee models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.db.Where("email = ?", email).First(&invitee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("no user with this email")
		}
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, invitee.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewInvalidInput("user is already a member of this workspace")
	}

	member := models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      invitee.ID,
		Role:        role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewInvalidInput("user is already a member of this workspace")
		}
		return nil, err
	}
	member.User = &invitee

	RecordActivity(models.ActivityUserInvited,
		fmt.Sprintf("%s joined workspace %q", invitee.Username, ws.Name),
		"", p.UserID, &workspaceID, nil)
	return &member, nil
}

// RemoveMember removes a member. Requires workspace admin; the owner
// cannot be removed.
func (s *WorkspaceService) RemoveMember(p authz.Principal, workspaceID, memberUserID uint) error {
	ws, err := s.authorize(p, authz.WorkspaceRemoveMember, workspaceID)
	if err != nil {
		return err
	}
	if memberUserID == ws.OwnerID {
		return response.NewInvalidInput("the owner cannot be removed from a workspace")
	}

	result := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, memberUserID).
		Delete(&models.WorkspaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("member not found")
	}

	RecordActivity(models.ActivityMemberLeft,
		fmt.Sprintf("A member was removed from workspace %q", ws.Name),
		"", p.UserID, &workspaceID, nil)
	return nil
}

// Leave removes the principal's own membership. Owners cannot leave their
// workspace; they delete it instead.
func (s *WorkspaceService) Leave(p authz.Principal, workspaceID uint) error {
	ws, err := s.authorize(p, authz.WorkspaceView, workspaceID)
	if err != nil {
		return err
	}
	if p.UserID == ws.OwnerID {
		return response.NewInvalidInput("the owner cannot leave a workspace; delete it instead")
	}

	result := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, p.UserID).
		Delete(&models.WorkspaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("workspace not found")
	}

	RecordActivity(models.ActivityMemberLeft,
		fmt.Sprintf("A member left workspace %q", ws.Name),
		"", p.UserID, &workspaceID, nil)
	return nil
}
