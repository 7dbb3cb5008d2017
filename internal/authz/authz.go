// Package authz implements the request-level authorization rules: the
// ordered global role hierarchy, the workspace permission table and the
// deny taxonomy. It is pure decision logic — callers load the ownership
// and membership facts, authz only judges them.
package authz

import "errors"

// Deny taxonomy. Handlers map these onto 401/403/404; ErrNotFound is
// returned instead of ErrForbidden wherever resource existence itself
// would leak access information.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrNotFound        = errors.New("resource not found")
	// ErrSelfRoleChange guards against an admin demoting themselves into a
	// lockout; mapped to 400, not 403.
	ErrSelfRoleChange = errors.New("cannot change your own role")
)

// Role is the global user role with a total order: User < Moderator < Admin.
type Role int

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUser:      "USER",
	RoleModerator: "MODERATOR",
	RoleAdmin:     "ADMIN",
}

func (r Role) String() string { return roleNames[r] }

// ParseRole maps a stored role string onto the ordered enum.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "USER":
		return RoleUser, true
	case "MODERATOR":
		return RoleModerator, true
	case "ADMIN":
		return RoleAdmin, true
	}
	return RoleUser, false
}

// AtLeast reports whether r sits at or above other in the hierarchy.
func (r Role) AtLeast(other Role) bool { return r >= other }

// MemberRole is the workspace-scoped role: Member < Admin < Owner.
type MemberRole int

const (
	MemberRoleMember MemberRole = iota
	MemberRoleAdmin
	MemberRoleOwner
)

var memberRoleNames = map[MemberRole]string{
	MemberRoleMember: "MEMBER",
	MemberRoleAdmin:  "ADMIN",
	MemberRoleOwner:  "OWNER",
}

func (r MemberRole) String() string { return memberRoleNames[r] }

// ParseMemberRole maps a stored membership role string onto the ordered enum.
func ParseMemberRole(s string) (MemberRole, bool) {
	switch s {
	case "MEMBER":
		return MemberRoleMember, true
	case "ADMIN":
		return MemberRoleAdmin, true
	case "OWNER":
		return MemberRoleOwner, true
	}
	return MemberRoleMember, false
}

// GlobalAction is an operation gated by the global role alone.
type GlobalAction int

const (
	ActionListUsers GlobalAction = iota
	ActionChangeUserRole
	ActionViewSettings
	ActionUpdateSettings
	ActionViewStats
	ActionCreateAnnouncement
	ActionViewAuditLogs
)

// globalPermissions maps each global action to the minimum role required.
var globalPermissions = map[GlobalAction]Role{
	ActionListUsers:          RoleModerator,
	ActionChangeUserRole:     RoleAdmin,
	ActionViewSettings:       RoleAdmin,
	ActionUpdateSettings:     RoleAdmin,
	ActionViewStats:          RoleAdmin,
	ActionCreateAnnouncement: RoleAdmin,
	ActionViewAuditLogs:      RoleAdmin,
}

// WorkspaceAction is an operation on a workspace or its contents.
type WorkspaceAction int

const (
	WorkspaceView WorkspaceAction = iota
	WorkspaceEdit
	WorkspaceNoteWrite
	WorkspaceConnectionWrite
	WorkspaceInvite
	WorkspaceRemoveMember
	WorkspaceDelete
)

// workspacePermissions maps each workspace action to the minimum member
// role required. The owner is always allowed regardless of this table.
var workspacePermissions = map[WorkspaceAction]MemberRole{
	WorkspaceView:            MemberRoleMember,
	WorkspaceEdit:            MemberRoleAdmin,
	WorkspaceNoteWrite:       MemberRoleMember,
	WorkspaceConnectionWrite: MemberRoleMember,
	WorkspaceInvite:          MemberRoleAdmin,
	WorkspaceRemoveMember:    MemberRoleAdmin,
	WorkspaceDelete:          MemberRoleOwner,
}

// Principal is the authenticated actor. A zero UserID means anonymous.
type Principal struct {
	UserID uint
	Role   Role
}

func (p Principal) Authenticated() bool { return p.UserID != 0 }

// WorkspaceRef carries the facts needed to judge workspace access.
// Membership is nil when the principal has no membership row.
type WorkspaceRef struct {
	OwnerID    uint
	IsPublic   bool
	Membership *MemberRole
}

// AuthorizeGlobal decides a global action for a principal.
func AuthorizeGlobal(p Principal, action GlobalAction) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	min, ok := globalPermissions[action]
	if !ok {
		return ErrForbidden
	}
	if !p.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeWorkspace decides a workspace action. Owners pass every check;
// a public workspace grants view to any authenticated principal. A
// principal who cannot even view the workspace gets ErrNotFound so the
// workspace's existence is not leaked; a viewer lacking the required
// member role gets ErrForbidden.
func AuthorizeWorkspace(p Principal, action WorkspaceAction, ws WorkspaceRef) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	if ws.OwnerID == p.UserID {
		return nil
	}

	canView := ws.IsPublic || ws.Membership != nil
	if !canView {
		return ErrNotFound
	}

	min := workspacePermissions[action]
	if action == WorkspaceView {
		return nil
	}
	if ws.Membership == nil || !(*ws.Membership >= min) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeRoleChange decides whether actor may change target's global
// role. Admin required; acting on one's own account is always denied,
// admin or not.
func AuthorizeRoleChange(actor Principal, targetUserID uint) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !actor.Role.AtLeast(RoleAdmin) {
		return ErrForbidden
	}
	if actor.UserID == targetUserID {
		return ErrSelfRoleChange
	}
	return nil
}
