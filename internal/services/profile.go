package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// ProfileService handles self-service profile updates and public profile reads.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Profile is the public view of an account, as shown on profile pages.
type Profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
	IsOnline bool   `json:"is_online"`
}

// ProfileRequest carries self-update fields; nil fields are untouched.
// Role, email and username are never updatable here.
type ProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

func (r *ProfileRequest) validate() []response.FieldError {
	var details []response.FieldError
	if r.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*r.Name)) > 100 {
		details = append(details, response.FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	if r.Avatar != nil && utf8.RuneCountInString(*r.Avatar) > 500 {
		details = append(details, response.FieldError{Field: "avatar", Message: "must be at most 500 characters"})
	}
	if r.Bio != nil && utf8.RuneCountInString(*r.Bio) > 500 {
		details = append(details, response.FieldError{Field: "bio", Message: "must be at most 500 characters"})
	}
	return details
}

// Get returns another user's public profile.
func (s *ProfileService) Get(userID uint) (*Profile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &Profile{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Bio:      user.Bio,
		Role:     user.Role,
		IsOnline: user.IsOnline,
	}, nil
}

// Update applies the caller's own profile changes and returns the fresh user.
func (s *ProfileService) Update(p authz.Principal, req ProfileRequest) (*models.User, error) {
	if details := req.validate(); len(details) > 0 {
		return nil, response.NewInvalidInput("invalid profile", details...)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*req.Avatar)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.User{}).Where("id = ?", p.UserID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var user models.User
	if err := s.db.First(&user, p.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
