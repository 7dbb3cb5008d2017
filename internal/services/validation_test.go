package services

import (
	"strings"
	"testing"

	"github.com/notevault/notevault/pkg/response"
)

func fieldNames(details []response.FieldError) []string {
	var names []string
	for _, d := range details {
		names = append(names, d.Field)
	}
	return names
}

func hasField(details []response.FieldError, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}

func TestWorkspaceRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        WorkspaceRequest
		wantFields []string
	}{
		{"valid", WorkspaceRequest{Name: "Team Board", Color: "#336699"}, nil},
		{"empty name", WorkspaceRequest{Name: "   "}, []string{"name"}},
		{"name too long", WorkspaceRequest{Name: strings.Repeat("a", 101)}, []string{"name"}},
		{"name at limit", WorkspaceRequest{Name: strings.Repeat("a", 100)}, nil},
		{"description too long", WorkspaceRequest{Name: "ok", Description: strings.Repeat("d", 501)}, []string{"description"}},
		{"bad color", WorkspaceRequest{Name: "ok", Color: "blue"}, []string{"color"}},
		{"multiple violations", WorkspaceRequest{Name: "", Color: "#zzz"}, []string{"name", "color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.validate()
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func TestNoteRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        NoteRequest
		wantFields []string
	}{
		{"valid minimal", NoteRequest{Title: "Shopping list"}, nil},
		{"valid typed", NoteRequest{Title: "Snippet", Type: "CODE", Color: "#abcdef"}, nil},
		{"blank title", NoteRequest{Title: "  "}, []string{"title"}},
		{"title too long", NoteRequest{Title: strings.Repeat("t", 201)}, []string{"title"}},
		{"title at limit", NoteRequest{Title: strings.Repeat("t", 200)}, nil},
		{"unknown type", NoteRequest{Title: "ok", Type: "SPREADSHEET"}, []string{"type"}},
		{"bad color", NoteRequest{Title: "ok", Color: "#12345"}, []string{"color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.validate()
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func TestNoteRequest_ValidTypes(t *testing.T) {
	for _, typ := range []string{"TEXT", "RICH_TEXT", "CODE", "MARKDOWN"} {
		req := NoteRequest{Title: "ok", Type: typ}
		if details := req.validate(); len(details) != 0 {
			t.Errorf("type %q should be accepted, got %v", typ, details)
		}
	}
}

func TestValidateConnectionStyle(t *testing.T) {
	tests := []struct {
		name       string
		style      string
		color      string
		wantFields []string
	}{
		{"empty is fine", "", "", nil},
		{"solid", "SOLID", "#000000", nil},
		{"dashed", "DASHED", "", nil},
		{"dotted", "DOTTED", "", nil},
		{"unknown style", "WAVY", "", []string{"style"}},
		{"bad color", "", "red", []string{"color"}},
		{"both bad", "ZIGZAG", "#12", []string{"style", "color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validateConnectionStyle(tt.style, tt.color)
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		wantFields []string
	}{
		{"valid", "alice", "alice@example.com", "secret1", nil},
		{"username too short", "ab", "a@b.com", "secret1", []string{"username"}},
		{"username at minimum", "abc", "a@b.com", "secret1", nil},
		{"username too long", strings.Repeat("u", 51), "a@b.com", "secret1", []string{"username"}},
		{"email without at sign", "alice", "not-an-email", "secret1", []string{"email"}},
		{"password too short", "alice", "a@b.com", "12345", []string{"password"}},
		{"password at minimum", "alice", "a@b.com", "123456", nil},
		{"password too long", "alice", "a@b.com", strings.Repeat("p", 73), []string{"password"}},
		{"everything wrong", "x", "nope", "12", []string{"username", "email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validateCredentials(tt.username, tt.email, tt.password)
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func TestNormalizeChatMessage(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		msgType    string
		wantFields []string
	}{
		{"valid", "hello", "TEXT", nil},
		{"defaults type", "hello", "", nil},
		{"at limit", strings.Repeat("a", 1000), "", nil},
		{"over limit", strings.Repeat("a", 1001), "", []string{"content"}},
		{"empty after trim", "   ", "", []string{"content"}},
		{"unknown type", "hello", "VOICE", []string{"type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, details := normalizeChatMessage(tt.content, tt.msgType)
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func TestNormalizeChatMessage_Defaults(t *testing.T) {
	content, msgType, details := normalizeChatMessage("  hi there  ", "")
	if len(details) != 0 {
		t.Fatalf("unexpected violations %v", fieldNames(details))
	}
	if content != "hi there" {
		t.Errorf("content = %q, expected trimmed %q", content, "hi there")
	}
	if msgType != "TEXT" {
		t.Errorf("type = %q, expected default TEXT", msgType)
	}
}

// Length bounds count characters, so multi-byte text is not penalized.
func TestLengthBounds_CountRunes(t *testing.T) {
	accented1000 := strings.Repeat("é", 1000)
	if _, _, details := normalizeChatMessage(accented1000, ""); len(details) != 0 {
		t.Errorf("1000 multi-byte characters should be accepted, got %v", fieldNames(details))
	}
	if _, _, details := normalizeChatMessage(accented1000+"é", ""); !hasField(details, "content") {
		t.Error("1001 multi-byte characters should be rejected")
	}

	note := NoteRequest{Title: strings.Repeat("ü", 200)}
	if details := note.validate(); len(details) != 0 {
		t.Errorf("200-character multi-byte title should be accepted, got %v", fieldNames(details))
	}

	ws := WorkspaceRequest{Name: strings.Repeat("ß", 100)}
	if details := ws.validate(); len(details) != 0 {
		t.Errorf("100-character multi-byte name should be accepted, got %v", fieldNames(details))
	}

	if details := validateCredentials(strings.Repeat("ñ", 50), "a@b.com", "secret1"); len(details) != 0 {
		t.Errorf("50-character multi-byte username should be accepted, got %v", fieldNames(details))
	}
}

func TestProfileRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        ProfileRequest
		wantFields []string
	}{
		{"empty", ProfileRequest{}, nil},
		{"valid", ProfileRequest{Name: strPtr("Alice"), Bio: strPtr("hi")}, nil},
		{"name at limit", ProfileRequest{Name: strPtr(strings.Repeat("n", 100))}, nil},
		{"name too long", ProfileRequest{Name: strPtr(strings.Repeat("n", 101))}, []string{"name"}},
		{"bio too long", ProfileRequest{Bio: strPtr(strings.Repeat("b", 501))}, []string{"bio"}},
		{"avatar too long", ProfileRequest{Avatar: strPtr(strings.Repeat("a", 501))}, []string{"avatar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.validate()
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestSettingsUpdateRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        SettingsUpdateRequest
		wantFields []string
	}{
		{"empty update", SettingsUpdateRequest{}, nil},
		{"file size at lower bound", SettingsUpdateRequest{MaxFileSize: int64Ptr(1024)}, nil},
		{"file size below bound", SettingsUpdateRequest{MaxFileSize: int64Ptr(1023)}, []string{"max_file_size"}},
		{"file size at upper bound", SettingsUpdateRequest{MaxFileSize: int64Ptr(100 * 1024 * 1024)}, nil},
		{"file size above bound", SettingsUpdateRequest{MaxFileSize: int64Ptr(100*1024*1024 + 1)}, []string{"max_file_size"}},
		{"workspaces in range", SettingsUpdateRequest{MaxWorkspacesPerUser: intPtr(100)}, nil},
		{"workspaces zero", SettingsUpdateRequest{MaxWorkspacesPerUser: intPtr(0)}, []string{"max_workspaces_per_user"}},
		{"notes below minimum", SettingsUpdateRequest{MaxNotesPerWorkspace: intPtr(9)}, []string{"max_notes_per_workspace"}},
		{"notes at minimum", SettingsUpdateRequest{MaxNotesPerWorkspace: intPtr(10)}, nil},
		{"chat retention at max", SettingsUpdateRequest{ChatRetentionDays: intPtr(365)}, nil},
		{"chat retention over max", SettingsUpdateRequest{ChatRetentionDays: intPtr(366)}, []string{"chat_retention_days"}},
		{"trash retention at max", SettingsUpdateRequest{TrashRetentionHours: intPtr(168)}, nil},
		{"trash retention over max", SettingsUpdateRequest{TrashRetentionHours: intPtr(169)}, []string{"trash_retention_hours"}},
		{"maintenance message too long", SettingsUpdateRequest{MaintenanceMessage: strPtr(strings.Repeat("m", 501))}, []string{"maintenance_message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.validate()
			if len(details) != len(tt.wantFields) {
				t.Fatalf("got violations %v, expected fields %v", fieldNames(details), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if !hasField(details, field) {
					t.Errorf("expected a violation on %q, got %v", field, fieldNames(details))
				}
			}
		})
	}
}
