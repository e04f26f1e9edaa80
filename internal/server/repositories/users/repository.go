// Package users persists identity records.
package users

import (
	"context"

	"devfolio/internal/server/models"
)

// Repository is the storage contract for identity records.
type Repository interface {
	// Create inserts a new user. Returns common.ErrorAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, email string, passwordHash string) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when no such user exists.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// ListWithProfiles returns the users that have a profile, ordered by id.
	ListWithProfiles(ctx context.Context) ([]*models.User, error)
}
