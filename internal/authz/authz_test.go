package authz

import (
	"errors"
	"testing"
)

func memberOf(r MemberRole) *MemberRole { return &r }

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		role  Role
		ok    bool
	}{
		{"USER", RoleUser, true},
		{"MODERATOR", RoleModerator, true},
		{"ADMIN", RoleAdmin, true},
		{"admin", RoleUser, false},
		{"", RoleUser, false},
		{"OWNER", RoleUser, false},
	}

	for _, tt := range tests {
		role, ok := ParseRole(tt.input)
		if role != tt.role || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%v, %v), expected (%v, %v)", tt.input, role, ok, tt.role, tt.ok)
		}
	}
}

func TestRole_Ordering(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleModerator) {
		t.Error("ADMIN should be at least MODERATOR")
	}
	if !RoleModerator.AtLeast(RoleUser) {
		t.Error("MODERATOR should be at least USER")
	}
	if RoleUser.AtLeast(RoleModerator) {
		t.Error("USER should not be at least MODERATOR")
	}
	if RoleModerator.AtLeast(RoleAdmin) {
		t.Error("MODERATOR should not be at least ADMIN")
	}
}

func TestAuthorizeGlobal_Matrix(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		action GlobalAction
		want   error
	}{
		{"user cannot update settings", RoleUser, ActionUpdateSettings, ErrForbidden},
		{"moderator cannot update settings", RoleModerator, ActionUpdateSettings, ErrForbidden},
		{"admin updates settings", RoleAdmin, ActionUpdateSettings, nil},
		{"user cannot list users", RoleUser, ActionListUsers, ErrForbidden},
		{"moderator lists users", RoleModerator, ActionListUsers, nil},
		{"admin lists users", RoleAdmin, ActionListUsers, nil},
		{"moderator cannot change roles", RoleModerator, ActionChangeUserRole, ErrForbidden},
		{"moderator cannot create announcements", RoleModerator, ActionCreateAnnouncement, ErrForbidden},
		{"admin creates announcements", RoleAdmin, ActionCreateAnnouncement, nil},
		{"user cannot view stats", RoleUser, ActionViewStats, ErrForbidden},
		{"admin views audit logs", RoleAdmin, ActionViewAuditLogs, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorizeGlobal(Principal{UserID: 7, Role: tt.role}, tt.action)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("AuthorizeGlobal() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeGlobal_Anonymous(t *testing.T) {
	err := AuthorizeGlobal(Principal{}, ActionUpdateSettings)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous principal: got %v, expected ErrUnauthenticated", err)
	}
}

func TestAuthorizeWorkspace_Owner(t *testing.T) {
	ws := WorkspaceRef{OwnerID: 1, IsPublic: false}
	owner := Principal{UserID: 1, Role: RoleUser}

	// Owner passes every action without a membership row.
	for _, action := range []WorkspaceAction{
		WorkspaceView, WorkspaceEdit, WorkspaceNoteWrite,
		WorkspaceConnectionWrite, WorkspaceInvite, WorkspaceDelete,
	} {
		if err := AuthorizeWorkspace(owner, action, ws); err != nil {
			t.Errorf("owner denied action %d: %v", action, err)
		}
	}
}

func TestAuthorizeWorkspace_NonMemberPrivate(t *testing.T) {
	ws := WorkspaceRef{OwnerID: 1, IsPublic: false}
	stranger := Principal{UserID: 2, Role: RoleUser}

	// Existence must not leak: NotFound, not Forbidden.
	if err := AuthorizeWorkspace(stranger, WorkspaceView, ws); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger view of private workspace: got %v, expected ErrNotFound", err)
	}
	if err := AuthorizeWorkspace(stranger, WorkspaceConnectionWrite, ws); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger write to private workspace: got %v, expected ErrNotFound", err)
	}
}

func TestAuthorizeWorkspace_GlobalAdminGetsNoImplicitAccess(t *testing.T) {
	ws := WorkspaceRef{OwnerID: 1, IsPublic: false}
	admin := Principal{UserID: 99, Role: RoleAdmin}

	if err := AuthorizeWorkspace(admin, WorkspaceView, ws); !errors.Is(err, ErrNotFound) {
		t.Errorf("global admin without membership: got %v, expected ErrNotFound", err)
	}
}

func TestAuthorizeWorkspace_PublicRead(t *testing.T) {
	ws := WorkspaceRef{OwnerID: 1, IsPublic: true}
	stranger := Principal{UserID: 2, Role: RoleUser}

	if err := AuthorizeWorkspace(stranger, WorkspaceView, ws); err != nil {
		t.Errorf("public workspace view denied: %v", err)
	}
	// Public grants read, never write.
	if err := AuthorizeWorkspace(stranger, WorkspaceNoteWrite, ws); !errors.Is(err, ErrForbidden) {
		t.Errorf("public workspace write: got %v, expected ErrForbidden", err)
	}
}

func TestAuthorizeWorkspace_MemberMatrix(t *testing.T) {
	ws := func(m MemberRole) WorkspaceRef {
		return WorkspaceRef{OwnerID: 1, IsPublic: false, Membership: memberOf(m)}
	}
	p := Principal{UserID: 2, Role: RoleUser}

	tests := []struct {
		name   string
		ref    WorkspaceRef
		action WorkspaceAction
		want   error
	}{
		{"member views", ws(MemberRoleMember), WorkspaceView, nil},
		{"member writes notes", ws(MemberRoleMember), WorkspaceNoteWrite, nil},
		{"member writes connections", ws(MemberRoleMember), WorkspaceConnectionWrite, nil},
		{"member cannot invite", ws(MemberRoleMember), WorkspaceInvite, ErrForbidden},
		{"member cannot edit workspace", ws(MemberRoleMember), WorkspaceEdit, ErrForbidden},
		{"member cannot delete", ws(MemberRoleMember), WorkspaceDelete, ErrForbidden},
		{"ws admin invites", ws(MemberRoleAdmin), WorkspaceInvite, nil},
		{"ws admin edits workspace", ws(MemberRoleAdmin), WorkspaceEdit, nil},
		{"ws admin cannot delete", ws(MemberRoleAdmin), WorkspaceDelete, ErrForbidden},
		{"owner-role member deletes", ws(MemberRoleOwner), WorkspaceDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorizeWorkspace(p, tt.action, tt.ref)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("AuthorizeWorkspace() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeRoleChange_SelfAlwaysDenied(t *testing.T) {
	admin := Principal{UserID: 5, Role: RoleAdmin}

	if err := AuthorizeRoleChange(admin, 5); !errors.Is(err, ErrSelfRoleChange) {
		t.Errorf("self role change by admin: got %v, expected ErrSelfRoleChange", err)
	}
	if err := AuthorizeRoleChange(admin, 6); err != nil {
		t.Errorf("admin changing another user's role: %v", err)
	}
}

func TestAuthorizeRoleChange_NonAdmin(t *testing.T) {
	mod := Principal{UserID: 5, Role: RoleModerator}
	if err := AuthorizeRoleChange(mod, 6); !errors.Is(err, ErrForbidden) {
		t.Errorf("moderator role change: got %v, expected ErrForbidden", err)
	}
}
