package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(50);not null" json:"name"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"type:varchar(255)" json:"-"`
	Role            UserRole       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	AuthProvider    AuthProvider   `gorm:"type:varchar(20);not null;default:'local'" json:"auth_provider"`
	GoogleUID       *string        `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	IsEmailVerified bool           `json:"is_email_verified"`
	ProfilePicture  string         `gorm:"type:varchar(512)" json:"profile_picture,omitempty"`
	LastLogin       *time.Time     `json:"last_login"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedTasks []Task `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedTasks  []Task `gorm:"foreignKey:CreatedByID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
