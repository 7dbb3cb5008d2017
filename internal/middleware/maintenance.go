package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaintenanceGate redirects page traffic to /maintenance while maintenance
// mode is on. maintenanceOn is expected to read the flag fresh on every
// call and fail open to normal operation. Admins pass through so they can
// turn maintenance back off.
//
// Only page routes are gated: /api/ requests, the setup and maintenance
// pages themselves and static assets are exempt, so API clients keep
// working during maintenance.
func MaintenanceGate(maintenanceOn func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isGateExempt(path) || path == "/maintenance" || path == "/setup" {
			c.Next()
			return
		}
		if !maintenanceOn() {
			c.Next()
			return
		}

		// Admins keep full access during maintenance.
		if cookie, err := c.Cookie(TokenCookie); err == nil && IsAdminToken(cookie) {
			c.Next()
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, "/maintenance")
		c.Abort()
	}
}
