// Package cards declares the storage contract for content cards.
package cards

import (
	"context"

	"github.com/dkrasnova/brandkit/internal/server/models"
)

type Repository interface {
	// Create stores a new card and returns it with the ID assigned.
	Create(ctx context.Context, card *models.Card) (*models.Card, error)

	// ListByUID returns all cards owned by uid, newest first.
	ListByUID(ctx context.Context, uid string) ([]models.Card, error)

	// Get returns the card by id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Card, error)

	// Update replaces the stored row for card.ID wholesale.
	Update(ctx context.Context, card *models.Card) (*models.Card, error)
}
