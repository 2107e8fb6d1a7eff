package httpauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkrasnova/brandkit/internal/client/identity"
	"github.com/dkrasnova/brandkit/internal/client/repositories/sessions"
	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// refreshLeeway forces a refresh shortly before the access token actually
// expires, so attached credentials don't die mid-flight.
const refreshLeeway = 30 * time.Second

// Provider implements identity.Provider over the backend's token endpoints.
// It holds the current session in memory, mirrors it to the local SQLite
// store, and fans auth state changes out to subscribers. New subscribers
// receive the current state immediately once Restore has run.
type Provider struct {
	api  *Client
	repo sessions.Repository
	log  observe.Logger

	mu        sync.Mutex
	session   *Session
	known     bool
	listeners map[int]func(*identity.Identity, error)
	next      int
}

func NewProvider(api *Client, repo sessions.Repository, log observe.Logger) *Provider {
	if log == nil {
		log = observe.NewNop()
	}
	return &Provider{
		api:       api,
		repo:      repo,
		log:       log,
		listeners: make(map[int]func(*identity.Identity, error)),
	}
}

// Restore loads the persisted session, if any, and publishes the initial
// auth state. It must run once before the provider is used; until then new
// subscribers receive nothing.
func (p *Provider) Restore(ctx context.Context) error {
	s, err := loadSession(ctx, p.repo)
	if err != nil {
		p.log.Error(ctx, "restoring session", "error", err)
		p.setSession(nil)
		return fmt.Errorf("restoring session: %w", err)
	}
	if s != nil {
		p.log.Info(ctx, "session restored", "uid", s.UID)
	}
	p.setSession(s)
	return nil
}

// AuthState subscribes fn to auth state changes. When the state is already
// known the current value is delivered synchronously before the subscription
// returns.
func (p *Provider) AuthState(fn func(id *identity.Identity, err error)) (cancel func()) {
	p.mu.Lock()
	id := p.next
	p.next++
	p.listeners[id] = fn
	known := p.known
	current := sessionIdentity(p.session)
	p.mu.Unlock()

	if known {
		fn(current, nil)
	}

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*identity.Identity, error) {
	pair, err := p.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return p.adopt(ctx, pair)
}

func (p *Provider) Register(ctx context.Context, email, password string) (*identity.Identity, error) {
	pair, err := p.api.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return p.adopt(ctx, pair)
}

// SignOut revokes the refresh token and drops the local session. Revocation
// failures are logged and swallowed; the local session is cleared regardless
// so the user is never stuck signed in.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()

	if s != nil {
		if err := p.api.Logout(ctx, s.RefreshToken); err != nil {
			p.log.Warn(ctx, "revoking refresh token", "error", err)
		}
	}
	return p.drop(ctx)
}

// Invalidate drops the local session without calling the backend. It is the
// hook for server-side session expiry (a 401 on an API call).
func (p *Provider) Invalidate(ctx context.Context) error {
	return p.drop(ctx)
}

func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	return p.api.PasswordReset(ctx, email)
}

// CurrentToken returns a usable access token, refreshing once via the
// refresh token when the current one is expired or nearly so.
func (p *Provider) CurrentToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()

	if s == nil {
		return "", fmt.Errorf("no active session: %w", common.ErrUnauthorized)
	}
	if !tokenExpired(s.AccessToken) {
		return s.AccessToken, nil
	}

	pair, err := p.api.Refresh(ctx, s.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refreshing access token: %w", err)
	}
	if _, err := p.adopt(ctx, pair); err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}

// Authenticated reports whether a session is currently held. It feeds the
// request middleware's attach decision.
func (p *Provider) Authenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil
}

// adopt stores the token pair as the current session, persists it, and
// publishes the new auth state.
func (p *Provider) adopt(ctx context.Context, pair *tokenPair) (*identity.Identity, error) {
	s := &Session{
		UID:          pair.UID,
		Email:        pair.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if err := saveSession(ctx, p.repo, s); err != nil {
		return nil, err
	}
	p.setSession(s)
	return sessionIdentity(s), nil
}

func (p *Provider) drop(ctx context.Context) error {
	if err := clearSession(ctx, p.repo); err != nil {
		p.log.Error(ctx, "clearing persisted session", "error", err)
		p.setSession(nil)
		return err
	}
	p.setSession(nil)
	return nil
}

// setSession replaces the in-memory session and notifies listeners outside
// the lock.
func (p *Provider) setSession(s *Session) {
	p.mu.Lock()
	p.session = s
	p.known = true
	fns := make([]func(*identity.Identity, error), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	id := sessionIdentity(s)
	for _, fn := range fns {
		fn(id, nil)
	}
}

func sessionIdentity(s *Session) *identity.Identity {
	if s == nil {
		return nil
	}
	return &identity.Identity{UID: s.UID, Email: s.Email}
}

// tokenExpired inspects the unverified exp claim. Unparseable tokens count
// as expired so the next use forces a refresh.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now().Add(refreshLeeway))
}
