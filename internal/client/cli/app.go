// Package cli is the interactive shell. It wires the stores, the guarded
// router, and the backend clients together, and renders each committed
// route as a terminal view.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dkrasnova/brandkit/internal/client/api"
	"github.com/dkrasnova/brandkit/internal/client/cards"
	"github.com/dkrasnova/brandkit/internal/client/config"
	"github.com/dkrasnova/brandkit/internal/client/identity"
	"github.com/dkrasnova/brandkit/internal/client/identity/httpauth"
	"github.com/dkrasnova/brandkit/internal/client/nav"
	"github.com/dkrasnova/brandkit/internal/client/notify"
	"github.com/dkrasnova/brandkit/internal/client/profile"
	"github.com/dkrasnova/brandkit/internal/client/repositories/sessions"
	"github.com/dkrasnova/brandkit/internal/client/social"
	"github.com/dkrasnova/brandkit/internal/client/storage"
	"github.com/dkrasnova/brandkit/internal/observe"
)

const sessionExpiredMessage = "Session expired. Please log in again."

type App struct {
	config   *config.Config
	db       *sql.DB
	provider *httpauth.Provider
	api      *api.Client
	ids      *identity.Store
	profiles *profile.Store
	cards    *cards.Service
	linkedin *social.LinkedIn
	toasts   *notify.Queue
	router   *nav.Router
	log      observe.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log observe.Logger) (*App, error) {
	if log == nil {
		log = observe.NewNop()
	}

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	repo := sessions.NewSQLiteRepository(db)
	authClient := httpauth.NewClient(cfg.ServerAddr, &http.Client{Timeout: cfg.RequestTimeout})
	provider := httpauth.NewProvider(authClient, repo, log)

	a := &App{
		config:   cfg,
		db:       db,
		provider: provider,
		toasts:   notify.NewQueue(),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	transport := &api.AuthTransport{
		Authenticated: provider.Authenticated,
		Token: func(r *http.Request) (string, error) {
			return provider.CurrentToken(r.Context())
		},
		OnSessionExpired: a.onSessionExpired,
	}
	apiClient := api.New(cfg.ServerAddr, &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
	})

	a.api = apiClient
	a.profiles = profile.NewStore(apiClient, log)
	a.ids = identity.NewStore(provider, a.profiles, log)
	a.cards = cards.NewService(apiClient, log)
	a.linkedin = social.NewLinkedIn(apiClient, log)

	a.router = nav.NewRouter("/cards", func(message string) bool {
		return Confirm(a.reader, message, a.out)
	}, log)
	a.registerRoutes()

	if err := provider.Restore(ctx); err != nil {
		log.Warn(ctx, "starting without persisted session", "error", err)
	}

	return a, nil
}

// onSessionExpired handles a 401 from any API call: one persistent toast,
// the local session dropped, and the user bounced to the sign-in screen.
func (a *App) onSessionExpired() {
	ctx := context.Background()
	a.toasts.Error(sessionExpiredMessage)
	if err := a.provider.Invalidate(ctx); err != nil {
		a.log.Error(ctx, "dropping expired session", "error", err)
	}
	if _, err := a.router.Navigate(ctx, "/login"); err != nil {
		a.log.Error(ctx, "redirecting to sign-in", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.ids.IsAuthenticated()
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "brandkit CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	id := a.ids.User().Get()
	if id == nil {
		return "signed out"
	}
	return id.Email
}

func (a *App) Close() {
	a.ids.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local database", "error", err)
	}
}
