// Package sessions declares the repository contract for issued-token
// session records.
package sessions

import (
	"context"
	"time"

	"github.com/avoronov/factura/internal/server/models"
)

// Repository defines operations over session records. Expiry is lazy:
// expired rows are simply never returned by FindValid; no sweeper is
// required for correctness.
type Repository interface {
	// Create stores a new session for userID expiring at expiresAt.
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// FindValid returns the session for token whose expiry is strictly
	// after now. A missing or already-expired session yields
	// common.ErrorNotFound; the two cases are indistinguishable.
	FindValid(ctx context.Context, token string, now time.Time) (*models.Session, error)

	// Delete revokes a session by token. Deleting an absent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every session owned by userID (password change,
	// account lockout).
	DeleteByUser(ctx context.Context, userID int64) error
}
