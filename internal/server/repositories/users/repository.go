// Package users declares the server-side repository contract for account
// records.
package users

import (
	"context"

	"github.com/avoronov/factura/internal/server/models"
)

// Repository defines operations over the users table. Not-found conditions
// surface as common.ErrorNotFound.
type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdatePasswordHash replaces the stored encoded hash wholesale.
	UpdatePasswordHash(ctx context.Context, id int64, encoded string) error
}
