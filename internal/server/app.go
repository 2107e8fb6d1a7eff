// Package server wires the services, storage backend, and HTTP listener
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dkrasnova/brandkit/internal/observe"
	"github.com/dkrasnova/brandkit/internal/server/config"
	"github.com/dkrasnova/brandkit/internal/server/httpapi"
	"github.com/dkrasnova/brandkit/internal/server/repositories/repomanager"
	"github.com/dkrasnova/brandkit/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	log    observe.Logger
	db     *sql.DB
	server *http.Server
}

// NewApp builds the application. An empty DatabaseDSN selects in-memory
// storage; anything else is treated as a Postgres DSN and migrated on
// startup.
func NewApp(ctx context.Context, cfg *config.Config, log observe.Logger) (*App, error) {
	if log == nil {
		log = observe.NewNop()
	}

	var (
		db    *sql.DB
		repos repomanager.RepositoryManager
	)
	if cfg.DatabaseDSN == "" {
		log.Info(ctx, "no database DSN configured, using in-memory storage")
		repos = repomanager.NewMemoryRepositoryManager()
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("pinging database: %w", err)
		}
		repos = repomanager.NewPostgresRepositoryManager()
		if err := repos.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	accounts := services.NewAccountService(db, repos, cfg, log)
	profiles := services.NewProfileService(db, repos, log)
	cards := services.NewCardService(db, repos, cfg.CardsPerBatch, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.NewServer(accounts, profiles, cards, log).Routes(),
	}

	return &App{config: cfg, log: log, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.log.Info(ctx, "starting server", "addr", a.config.Addr)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.db != nil {
		if closeErr := a.db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", closeErr)
		}
	}
	return err
}
