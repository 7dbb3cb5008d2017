package services

import (
	"errors"
	"strings"
	"time"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/pkg/response"
)

func nowPtr() *time.Time {
	t := time.Now()
	return &t
}

// RequestMeta carries the network origin of a request into services that
// record audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// denyError translates an authz decision into the HTTP error taxonomy.
// notFoundMsg keeps membership-scoped lookups opaque.
func denyError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return response.NewUnauthenticated("authentication required")
	case errors.Is(err, authz.ErrForbidden):
		return response.NewForbidden("forbidden")
	case errors.Is(err, authz.ErrNotFound):
		return response.NewNotFound(notFoundMsg)
	case errors.Is(err, authz.ErrSelfRoleChange):
		return response.NewInvalidInput("cannot change your own role")
	}
	return err
}

// normalizePage clamps pagination parameters to sane bounds.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// isHexColor reports whether s looks like a #rrggbb color.
func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range strings.ToLower(s[1:]) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// isUniqueViolation does a best-effort match of driver-specific unique
// constraint errors (sqlite, mysql, postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
