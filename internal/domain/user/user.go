// Package user contains the user entity and role model.
// Roles are assigned at creation and immutable afterwards; the backend is
// the sole authority on role enforcement.
package user

import (
	"strings"
	"time"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

// Role represents a user's role on the platform.
type Role string

const (
	// RoleStudent is the default role: owns and follows roadmaps.
	RoleStudent Role = "student"
	// RoleAdmin can manage accounts and inspect/remove any user's roadmaps.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("user", "ParseRole", shared.ErrInvalidInput,
			"role must be student or admin")
	}
	return r, nil
}

// User represents a platform account.
type User struct {
	// ID is the backend-assigned identifier.
	ID string

	// Username is unique across the platform.
	Username string

	// Role is immutable after creation.
	Role Role

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role. Callers must treat
// this as advisory: server-side checks are authoritative.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
