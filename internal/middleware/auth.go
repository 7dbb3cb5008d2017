package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/internal/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"

	// TokenCookie lets server-rendered pages authenticate without a
	// request header; the API prefers the Authorization header.
	TokenCookie = "nv_token"
)

// extractToken pulls the JWT from the Authorization header, falling back
// to the session cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthRequired is a middleware that checks for a valid JWT token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// AdminRequired is a middleware that checks for the ADMIN role
func AdminRequired() gin.HandlerFunc {
	return requireRole(authz.RoleAdmin)
}

// ModeratorRequired is a middleware that checks for MODERATOR or above
func ModeratorRequired() gin.HandlerFunc {
	return requireRole(authz.RoleModerator)
}

func requireRole(min authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := authz.ParseRole(GetRole(c))
		if !ok || !role.AtLeast(min) {
			// Denied attempts at privileged endpoints leave an audit trail.
			if userID := GetUserID(c); userID > 0 {
				services.RecordUnauthorizedAccess(&userID, c.Request.Method, c.Request.URL.Path,
					services.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()})
			}
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}

// GetPrincipal builds the authorization principal from the request
// context. Anonymous requests yield a zero principal.
func GetPrincipal(c *gin.Context) authz.Principal {
	role, ok := authz.ParseRole(GetRole(c))
	if !ok {
		role = authz.RoleUser
	}
	return authz.Principal{UserID: GetUserID(c), Role: role}
}

// IsAdminToken reports whether a raw token belongs to an active admin.
// Used by the page gates, which run before AuthRequired.
func IsAdminToken(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return false
	}
	return claims.Role == models.RoleAdmin
}
