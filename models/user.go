package models

import (
	"time"
)

// UserRole represents the role a user holds on the platform
type UserRole string

const (
	RoleRecruiter UserRole = "recruiter"
	RoleCandidate UserRole = "candidate"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleRecruiter || r == RoleCandidate
}

// User represents a platform user record, keyed by the identity provider subject
type User struct {
	ID          string    `json:"id" db:"id"` // identity provider subject
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Role        UserRole  `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance
func NewUser(subject, email, displayName string, role UserRole) *User {
	now := time.Now().UTC()
	return &User{
		ID:          subject,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasRole reports whether the stored role equals role
func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}

// IsRecruiter returns true if the user has the recruiter role
func (u *User) IsRecruiter() bool {
	return u.HasRole(RoleRecruiter)
}
