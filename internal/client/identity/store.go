package identity

import (
	"context"
	"sync"

	"github.com/dkrasnova/brandkit/internal/client/signal"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// ProfileWarmer is the slice of the profile store the auth flow touches:
// seeding a local placeholder at registration, and reloading the
// authoritative record after sign-in.
type ProfileWarmer interface {
	Seed(uid, email string)
	Reload(ctx context.Context) error
}

// Store is the single source of truth for the current identity. One instance
// exists per process; it subscribes to the provider stream at construction
// and never re-initializes.
//
// Snapshot updates arrive exclusively through the stream subscription.
// SignIn and Register deliberately do not set the snapshot themselves, so
// there is only ever one writer racing with nobody.
type Store struct {
	provider Provider
	profiles ProfileWarmer // optional
	log      observe.Logger

	user    *signal.Cell[*Identity]
	loading *signal.Cell[bool]
	lastErr *signal.Cell[string]

	first chan struct{}
	once  sync.Once

	cancel func()
}

// NewStore constructs the store and establishes the lifetime subscription to
// the provider stream. warmer may be nil.
func NewStore(p Provider, warmer ProfileWarmer, log observe.Logger) *Store {
	if log == nil {
		log = observe.NewNop()
	}
	s := &Store{
		provider: p,
		profiles: warmer,
		log:      log.With("component", "identity"),
		user:     signal.NewCell[*Identity](nil),
		loading:  signal.NewCell(true),
		lastErr:  signal.NewCell(""),
		first:    make(chan struct{}),
	}
	s.cancel = p.AuthState(s.onAuthState)
	return s
}

func (s *Store) onAuthState(id *Identity, err error) {
	if err != nil {
		// A broken stream must not leave consumers blocked: record the
		// failure, clear loading, and unblock Await with a nil snapshot.
		s.lastErr.Set(err.Error())
	} else {
		s.user.Set(id)
	}
	s.loading.Set(false)
	s.once.Do(func() { close(s.first) })
}

// Close tears down the stream subscription. Production code never calls
// this; it exists for tests.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// User is the current identity snapshot, nil when signed out.
func (s *Store) User() signal.Signal[*Identity] { return signal.ReadOnly(s.user) }

// Loading is true until the first stream emission (or stream error) arrives,
// and during user-invoked auth actions.
func (s *Store) Loading() signal.Signal[bool] { return signal.ReadOnly(s.loading) }

// Err holds the last user-facing error message, "" when clear.
func (s *Store) Err() signal.Signal[string] { return signal.ReadOnly(s.lastErr) }

// IsAuthenticated reports whether an identity snapshot currently exists.
func (s *Store) IsAuthenticated() bool { return s.user.Get() != nil }

// Await blocks until the stream has emitted at least once, then returns the
// current snapshot. Guards use this instead of the bare snapshot so a
// navigation issued while the store is still loading stays pending rather
// than misreading "not yet loaded" as "signed out".
func (s *Store) Await(ctx context.Context) (*Identity, error) {
	select {
	case <-s.first:
		return s.user.Get(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SignIn authenticates with the provider. The snapshot is not set here; it
// arrives via the stream. On failure the provider code is mapped to a fixed
// user-facing category, stored, and the original error re-raised.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.loading.Set(true)
	s.lastErr.Set("")
	defer s.loading.Set(false)

	if _, err := s.provider.SignIn(ctx, email, password); err != nil {
		s.lastErr.Set(Message(err))
		return err
	}

	if s.profiles != nil {
		// Best effort: the onboarding guard re-fetches on demand.
		if err := s.profiles.Reload(ctx); err != nil {
			s.log.Warn(ctx, "profile reload after sign-in failed", "err", err)
		}
	}
	return nil
}

// Register creates an account. Like SignIn, the identity snapshot arrives
// via the stream; on success a placeholder profile is seeded locally so the
// onboarding wizard has a record to stage into.
func (s *Store) Register(ctx context.Context, email, password string) error {
	s.loading.Set(true)
	s.lastErr.Set("")
	defer s.loading.Set(false)

	id, err := s.provider.Register(ctx, email, password)
	if err != nil {
		s.lastErr.Set(Message(err))
		return err
	}

	if s.profiles != nil && id != nil {
		s.profiles.Seed(id.UID, id.Email)
	}
	return nil
}

// SignOut delegates to the provider. Failure is recorded and re-raised so
// the invoking UI can react; it is never silently dropped.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		s.lastErr.Set(err.Error())
		return err
	}
	return nil
}

// SendPasswordReset always reports success to the caller. Provider failures
// are logged internally and suppressed so the flow cannot be used to probe
// which emails have accounts.
func (s *Store) SendPasswordReset(ctx context.Context, email string) error {
	s.loading.Set(true)
	defer s.loading.Set(false)

	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		s.log.Error(ctx, "password reset request failed", "err", err)
	}
	return nil
}

// CurrentToken proxies to the provider. The request middleware uses it to
// attach a credential per outgoing request.
func (s *Store) CurrentToken(ctx context.Context) (string, error) {
	return s.provider.CurrentToken(ctx)
}
