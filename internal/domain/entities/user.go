package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Phone          string     `json:"phone,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	IsAdmin        bool       `json:"isAdmin"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// RegisterInput represents input for OTP-verified registration
type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	OTP       string `json:"otp" binding:"required,len=6"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileInput is a sparse patch of mutable profile fields.
// Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	Password       *string `json:"password"`
}

// ResetPasswordInput represents the final step of the reset flow
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
