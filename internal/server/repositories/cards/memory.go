package cards

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.Card
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Card)}
}

func (r *MemoryRepository) Create(ctx context.Context, c *models.Card) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *c
	cp.ID = uuid.New().String()
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.byID[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *MemoryRepository) ListByUID(ctx context.Context, uid string) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Card
	for _, c := range r.byID {
		if c.UID == uid {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) Update(ctx context.Context, c *models.Card) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[c.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	cp := *c
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	r.byID[cp.ID] = &cp

	out := cp
	return &out, nil
}
