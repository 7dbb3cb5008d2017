package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetupGate redirects page traffic to /setup while no admin account
// exists, and bounces /setup back to / once the instance is operational.
// setupRequired is expected to fail open: report true when the admin
// count cannot be determined, so a broken instance never presents as
// operational.
//
// API routes are exempt on purpose: the setup endpoints themselves live
// under /api, and API clients get explicit setup errors instead of
// redirects.
func SetupGate(setupRequired func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isGateExempt(path) {
			c.Next()
			return
		}

		required := setupRequired()

		if required && path != "/setup" {
			c.Redirect(http.StatusTemporaryRedirect, "/setup")
			c.Abort()
			return
		}
		if !required && path == "/setup" {
			c.Redirect(http.StatusTemporaryRedirect, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// isGateExempt reports whether a path bypasses the page gates: the API
// surface, health checks and static assets.
func isGateExempt(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}
	if path == "/health" {
		return true
	}
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/assets/") ||
		path == "/favicon.ico"
}
