package user

import (
	"net/http"
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNotVerified        = apperror.New(http.StatusForbidden, "account is not verified")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrInvalidOTP         = apperror.New(http.StatusBadRequest, "invalid or expired OTP")
	ErrInvalidResetToken  = apperror.New(http.StatusBadRequest, "invalid or expired reset token")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// Role is the closed set of account roles. Permission checks switch
// exhaustively on it instead of comparing raw strings.
type Role string

const (
	RoleStudent     Role = "student"
	RoleHostelOwner Role = "hostel_owner"
	RoleAdmin       Role = "admin"
)

// ParseRole validates a role string coming from the outside.
// Admin accounts are provisioned out of band and cannot be self-registered.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleHostelOwner:
		return RoleHostelOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	PhoneNumber  *string
	IsVerified   bool
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Role     string
	IsActive *bool // Pointer to distinguish between false and not set

	Page     int
	PageSize int
}
