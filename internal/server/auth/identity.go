// Package auth issues and validates opaque session tokens and answers role
// authorization questions about validated identities.
package auth

import (
	"time"

	"github.com/avoronov/factura/internal/server/models"
)

// Identity is the claim produced by a successful token validation. It is
// immutable and lives only for the duration of one request. The role is the
// user's current role, resolved at validation time, so authorization sees
// role changes made after login.
type Identity struct {
	UserID    int64
	Username  string
	Role      models.Role
	ExpiresAt time.Time
}
