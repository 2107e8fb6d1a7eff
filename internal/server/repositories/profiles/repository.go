// Package profiles declares the storage contract for onboarding/brand
// records.
package profiles

import (
	"context"

	"github.com/dkrasnova/brandkit/internal/server/models"
)

type Repository interface {
	// Create stores a new profile and returns it with the ID assigned.
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)

	// GetByUID returns the profile owned by uid, or common.ErrNotFound.
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)

	// Update replaces the stored row for profile.UID wholesale.
	Update(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}
