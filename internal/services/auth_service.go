package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("user already exists with this email")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrUserNotFound         = errors.New("user not found")
	ErrOAuthUnavailable     = errors.New("oauth verifier is not configured")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, credential verification, the OAuth
// login upsert and profile maintenance.
type AuthService struct {
	userRepo repository.UserRepository
	verifier auth.IdentityVerifier
}

// NewAuthService creates a new AuthService. The verifier may be nil when
// OAuth login is not configured.
func NewAuthService(userRepo repository.UserRepository, verifier auth.IdentityVerifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
	}
}

// RegisterInput represents the required information to create a local user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// Register creates a new local-password user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		AuthProvider: models.ProviderLocal,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for password authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. A missing
// user and a wrong password produce the same error so callers cannot tell
// which check failed.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// OAuth-only accounts carry no local password and cannot log in here.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return user, nil
}

// OAuthLogin verifies an externally-issued ID token and upserts the matching
// local user. Repeated calls with the same identity are idempotent apart
// from the monotonically advancing LastLogin.
func (s *AuthService) OAuthLogin(ctx context.Context, idToken string) (*models.User, error) {
	if s.verifier == nil {
		return nil, ErrOAuthUnavailable
	}

	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	email := NormalizeEmail(claims.Email)

	user, err := s.userRepo.FindByEmailOrGoogleUID(email, claims.ProviderID)
	switch {
	case err == nil:
		if user.GoogleUID == nil {
			uid := claims.ProviderID
			user.GoogleUID = &uid
			user.AuthProvider = models.ProviderGoogle
			user.IsEmailVerified = claims.EmailVerified
			user.ProfilePicture = claims.Picture
		}
		user.LastLogin = &now
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		uid := claims.ProviderID
		user = &models.User{
			Name:            claims.Name,
			Email:           email,
			GoogleUID:       &uid,
			AuthProvider:    models.ProviderGoogle,
			IsEmailVerified: claims.EmailVerified,
			ProfilePicture:  claims.Picture,
			LastLogin:       &now,
			IsActive:        true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the mutable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UpdateProfile updates a user's name and email.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// ListUsers returns all users, newest first.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
