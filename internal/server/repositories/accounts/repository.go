// Package accounts declares the storage contract for registered users.
package accounts

import (
	"context"

	"github.com/dkrasnova/brandkit/internal/server/models"
)

type Repository interface {
	// Create stores a new account and returns it with the ID assigned.
	// A duplicate email yields common.ErrAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail returns the account for email, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns the account for id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
