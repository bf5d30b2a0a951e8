package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Values are decoded once at the
// data boundary with ParseRole; everywhere else comparisons are plain
// equality.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleVisitor Role = "visitor"
)

// ParseRole decodes a stored or submitted role string, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleVisitor):
		return RoleVisitor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
