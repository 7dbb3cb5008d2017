package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/response"
)

// cookieMaxAge matches the access token lifetime.
const cookieMaxAge = 24 * 3600

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService(db)}
}

// setSessionCookie mirrors the access token into the page-session cookie
// so server-rendered routes and the maintenance gate can see it.
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookie, token, cookieMaxAge, "/", "", false, true)
}

// Register creates a new account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user.Public())
}

// Login verifies credentials and issues tokens.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	result, err := h.authService.Login(req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	setSessionCookie(c, result.Tokens.AccessToken)
	response.Success(c, result)
}

// Refresh rotates a refresh token into a new pair.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	setSessionCookie(c, result.Tokens.AccessToken)
	response.Success(c, result)
}

// Logout revokes outstanding refresh tokens and clears the session cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.authService.Logout(userID); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	response.Success(c, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePassword rotates the account password.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed"})
}
