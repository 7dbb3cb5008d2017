package services

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/utils"
	"github.com/notevault/notevault/pkg/logger"
	"github.com/notevault/notevault/pkg/response"
)

// Initial admin bootstrap values.
const (
	initialAdminBalance    = 100000
	initialAdminLevel      = 10
	initialAdminExperience = 10000
)

// SetupService handles first-run bootstrap of the instance.
type SetupService struct {
	db *gorm.DB
}

func NewSetupService(db *gorm.DB) *SetupService {
	return &SetupService{db: db}
}

// IsSetupRequired reports whether no admin account exists yet. Fails open:
// a database error is treated as "setup required" so a broken instance
// never silently serves as operational.
func (s *SetupService) IsSetupRequired() bool {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		logger.Errorf("setup check failed, assuming setup required: %v", err)
		return true
	}
	return count == 0
}

// CreateInitialAdminRequest carries the first-run admin form.
type CreateInitialAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// ensureSetupAvailable rejects a repeated setup attempt with a 400.
func ensureSetupAvailable(required bool) error {
	if !required {
		return response.NewInvalidInput("setup has already been completed")
	}
	return nil
}

// CreateInitialAdmin creates the first admin account. The admin-count check
// is re-run inside this call so a concurrent winner closes the window.
func (s *SetupService) CreateInitialAdmin(req CreateInitialAdminRequest) (*models.User, error) {
	if err := ensureSetupAvailable(s.IsSetupRequired()); err != nil {
		return nil, err
	}

	if details := validateCredentials(req.Username, req.Email, req.Password); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid setup request", details...)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewServerError("failed to process password")
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}

	admin := models.User{
		Username:   strings.TrimSpace(req.Username),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   hashed,
		Name:       name,
		Role:       models.RoleAdmin,
		IsActive:   true,
		Balance:    initialAdminBalance,
		Level:      initialAdminLevel,
		Experience: initialAdminExperience,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewInvalidInput("an account with this username or email already exists")
		}
		return nil, err
	}

	logger.Infof("initial admin created: id=%d username=%s", admin.ID, admin.Username)
	return &admin, nil
}

// validateCredentials checks the shared username/email/password rules used
// by both setup and registration.
func validateCredentials(username, email, password string) []response.FieldError {
	var details []response.FieldError
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		details = append(details, response.FieldError{Field: "username", Message: "must be 3-50 characters"})
	}
	if !strings.Contains(email, "@") || len(email) > 255 {
		details = append(details, response.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < 6 || len(password) > 72 {
		details = append(details, response.FieldError{Field: "password", Message: "must be 6-72 characters"})
	}
	return details
}
