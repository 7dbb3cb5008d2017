package services

import (
	"errors"
	"testing"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/pkg/response"
)

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#ff0000", true},
		{"#FF0000", true},
		{"#1a2b3c", true},
		{"ff0000", false},
		{"#ff000", false},
		{"#ff00000", false},
		{"#gg0000", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isHexColor(tt.input); got != tt.want {
			t.Errorf("isHexColor(%q) = %v, expected %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, pageSize int
		wantPage       int
		wantSize       int
	}{
		{1, 20, 1, 20},
		{0, 20, 1, 20},
		{-5, 50, 1, 50},
		{3, 0, 3, 20},
		{3, 101, 3, 20},
		{2, 100, 2, 100},
	}

	for _, tt := range tests {
		page, size := normalizePage(tt.page, tt.pageSize)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), expected (%d, %d)",
				tt.page, tt.pageSize, page, size, tt.wantPage, tt.wantSize)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite", errors.New("UNIQUE constraint failed: users.email"), true},
		{"mysql", errors.New("Error 1062: Duplicate entry 'bob' for key 'username'"), true},
		{"postgres", errors.New("duplicate key value violates unique constraint"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, expected %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDenyError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		in         error
		wantStatus int
		wantMsg    string
	}{
		{"unauthenticated", authz.ErrUnauthenticated, 401, "authentication required"},
		{"forbidden", authz.ErrForbidden, 403, "forbidden"},
		{"not found uses caller message", authz.ErrNotFound, 404, "note not found"},
		{"self role change", authz.ErrSelfRoleChange, 400, "cannot change your own role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := denyError(tt.in, "note not found")

			var appErr *response.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *response.AppError, got %T", err)
			}
			if appErr.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, expected %d", appErr.HTTPStatus, tt.wantStatus)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, expected %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestDenyError_PassesThroughUnknown(t *testing.T) {
	original := errors.New("disk full")
	if err := denyError(original, "not found"); err != original {
		t.Errorf("unknown errors should pass through unchanged, got %v", err)
	}
}
