package models

import "strings"

// Role distinguishes general users from administrators.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole maps a caller-supplied role string to a known Role,
// case-insensitively. Returns false for anything else.
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(s, string(RoleUser)):
		return RoleUser, true
	case strings.EqualFold(s, string(RoleAdmin)):
		return RoleAdmin, true
	}
	return "", false
}

// IsAdmin reports whether the role grants administrator access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
