package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnova/brandkit/internal/dbx"
	"github.com/dkrasnova/brandkit/internal/server/repositories/accounts"
	"github.com/dkrasnova/brandkit/internal/server/repositories/cards"
	"github.com/dkrasnova/brandkit/internal/server/repositories/profiles"
	"github.com/dkrasnova/brandkit/internal/server/repositories/refreshtokens"
)

// MemoryRepositoryManager vends shared in-memory repositories. The db
// argument is ignored; state lives in the manager itself.
type MemoryRepositoryManager struct {
	accounts      *accounts.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	profiles      *profiles.MemoryRepository
	cards         *cards.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts:      accounts.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		profiles:      profiles.NewMemoryRepository(),
		cards:         cards.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Accounts(dbx.Querier) accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) RefreshTokens(dbx.Querier) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Profiles(dbx.Querier) profiles.Repository {
	return m.profiles
}

func (m *MemoryRepositoryManager) Cards(dbx.Querier) cards.Repository {
	return m.cards
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
