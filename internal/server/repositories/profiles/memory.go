package profiles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	byUID map[string]*models.Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUID: make(map[string]*models.Profile)}
}

func clone(p *models.Profile) *models.Profile {
	cp := *p
	cp.Keywords = append([]string(nil), p.Keywords...)
	return &cp
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUID[p.UID]; exists {
		return nil, common.ErrAlreadyExists
	}

	cp := clone(p)
	cp.ID = uuid.New().String()
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.Keywords == nil {
		cp.Keywords = []string{}
	}
	r.byUID[cp.UID] = cp
	return clone(cp), nil
}

func (r *MemoryRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUID[uid]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byUID[p.UID]
	if !ok {
		return nil, common.ErrNotFound
	}

	cp := clone(p)
	cp.ID = existing.ID
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	if cp.Keywords == nil {
		cp.Keywords = []string{}
	}
	r.byUID[cp.UID] = cp
	return clone(cp), nil
}
