package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/config"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/utils"
	"github.com/notevault/notevault/pkg/logger"
	"github.com/notevault/notevault/pkg/response"
)

const (
	defaultAccessTokenHours = 24
	refreshTokenDays        = 30
	refreshTokenBytes       = 32
)

// accessTokenTTLHours returns the configured access-token lifetime.
func accessTokenTTLHours() int {
	if cfg := config.GlobalConfig; cfg != nil && cfg.JWT.ExpireHour > 0 {
		return cfg.JWT.ExpireHour
	}
	return defaultAccessTokenHours
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// RegisterRequest carries the public sign-up form.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// LoginRequest accepts a username or email as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// TokenPair is the issued credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // access token lifetime, seconds
}

// LoginResult bundles tokens with the authenticated user.
type LoginResult struct {
	User   models.PublicUser `json:"user"`
	Tokens TokenPair         `json:"tokens"`
}

// Register creates a standard USER account.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	if details := validateCredentials(req.Username, req.Email, req.Password); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid registration request", details...)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewServerError("failed to process password")
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}

	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Name:     name,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflict("an account with this username or email already exists")
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a token pair. The failure message
// never distinguishes unknown accounts from wrong passwords.
func (s *AuthService) Login(req LoginRequest, meta RequestMeta) (*LoginResult, error) {
	var user models.User
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	err := s.db.Where("username = ? OR email = ?", req.Identifier, identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthenticated("invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthenticated("invalid credentials")
	}
	if !user.IsActive {
		return nil, response.NewForbidden("account is deactivated")
	}

	now := time.Now()
	s.db.Model(&user).Updates(map[string]interface{}{
		"is_online":  true,
		"last_login": now,
	})

	tokens, err := s.issueTokens(&user, meta)
	if err != nil {
		return nil, err
	}

	logger.Infof("user logged in: id=%d username=%s", user.ID, user.Username)
	return &LoginResult{User: user.Public(), Tokens: *tokens}, nil
}

// Refresh rotates a refresh token: the presented token is revoked, a new
// pair is issued, and the old row points at its replacement. A revoked or
// expired token is rejected.
func (s *AuthService) Refresh(refreshToken string, meta RequestMeta) (*LoginResult, error) {
	hash := hashRefreshToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthenticated("invalid refresh token")
		}
		return nil, err
	}
	if stored.RevokedAt != nil || time.Now().After(stored.ExpiresAt) {
		return nil, response.NewUnauthenticated("refresh token expired or revoked")
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		return nil, response.NewUnauthenticated("invalid refresh token")
	}
	if !user.IsActive {
		return nil, response.NewForbidden("account is deactivated")
	}

	tokens, err := s.issueTokens(&user, meta)
	if err != nil {
		return nil, err
	}

	// Revoke the old token and link it to the replacement.
	var replacement models.RefreshToken
	now := time.Now()
	update := map[string]interface{}{"revoked_at": now}
	if err := s.db.Where("token_hash = ?", hashRefreshToken(tokens.RefreshToken)).First(&replacement).Error; err == nil {
		update["replaced_by_token_id"] = replacement.ID
	}
	s.db.Model(&stored).Updates(update)

	return &LoginResult{User: user.Public(), Tokens: *tokens}, nil
}

// Logout revokes all of the user's live refresh tokens and marks them
// offline.
func (s *AuthService) Logout(userID uint) error {
	now := time.Now()
	if err := s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error; err != nil {
		return err
	}
	return s.db.Model(&models.User{}).Where("id = ?", userID).Update("is_online", false).Error
}

// ChangePassword verifies the current password before setting a new one,
// then revokes outstanding refresh tokens.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return response.NewNotFound("user not found")
	}
	if !utils.CheckPassword(oldPassword, user.Password) {
		return response.NewUnauthenticated("current password is incorrect")
	}
	if len(newPassword) < 6 || len(newPassword) > 72 {
		return response.NewInvalidInput("invalid password",
			response.FieldError{Field: "new_password", Message: "must be 6-72 characters"})
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return response.NewServerError("failed to process password")
	}
	if err := s.db.Model(&user).Update("password", hashed).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// GetUserByID loads a user for profile endpoints.
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User, meta RequestMeta) (*TokenPair, error) {
	expireHours := accessTokenTTLHours()
	access, err := utils.GenerateToken(user.ID, user.Username, user.Role, expireHours)
	if err != nil {
		return nil, response.NewServerError("failed to issue token")
	}

	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, response.NewServerError("failed to issue token")
	}
	refresh := hex.EncodeToString(raw)

	record := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   hashRefreshToken(refresh),
		ExpiresAt:   time.Now().AddDate(0, 0, refreshTokenDays),
		CreatedByIP: meta.IP,
		UserAgent:   meta.UserAgent,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expireHours * 3600,
	}, nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
