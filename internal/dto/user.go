package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthLoginRequest is the body of POST /api/users/oauth-login.
type OAuthLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserDTO represents a user in API responses. The password hash is never
// part of any response representation.
type UserDTO struct {
	ID              uint64              `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Role            models.UserRole     `json:"role"`
	AuthProvider    models.AuthProvider `json:"auth_provider"`
	IsEmailVerified bool                `json:"is_email_verified"`
	ProfilePicture  string              `json:"profile_picture,omitempty"`
	LastLogin       *time.Time          `json:"last_login"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
}

// UserSummaryDTO is the short user representation embedded in task responses.
type UserSummaryDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		AuthProvider:    user.AuthProvider,
		IsEmailVerified: user.IsEmailVerified,
		ProfilePicture:  user.ProfilePicture,
		LastLogin:       user.LastLogin,
		IsActive:        user.IsActive,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserSummaryDTO converts a User model to its embedded summary form
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
