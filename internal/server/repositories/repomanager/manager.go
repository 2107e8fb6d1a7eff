// Package repomanager vends repository implementations so services stay
// agnostic of the storage backend. The Postgres manager also owns schema
// migrations; the in-memory one backs tests and DSN-less local runs.
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

type RepositoryManager interface {
	Accounts(db dbx.Querier) accounts.Repository
	RefreshTokens(db dbx.Querier) refreshtokens.Repository
	Profiles(db dbx.Querier) profiles.Repository
	Cards(db dbx.Querier) cards.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
