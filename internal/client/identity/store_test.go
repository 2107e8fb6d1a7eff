package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnova/brandkit/internal/common"
)

// fakeProvider implements Provider for store tests. Emissions are driven by
// the test through emit/fail.
type fakeProvider struct {
	listener func(*Identity, error)
	canceled bool

	signInID  *Identity
	signInErr error

	registerID  *Identity
	registerErr error

	signOutErr error
	resetErr   error

	tokenRet string
	tokenErr error

	lastSignInEmail   string
	lastRegisterEmail string
	resetCalls        int
}

func (f *fakeProvider) AuthState(fn func(*Identity, error)) func() {
	f.listener = fn
	return func() { f.canceled = true }
}

func (f *fakeProvider) emit(id *Identity) { f.listener(id, nil) }
func (f *fakeProvider) fail(err error)    { f.listener(nil, err) }

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	f.lastSignInEmail = email
	return f.signInID, f.signInErr
}

func (f *fakeProvider) Register(ctx context.Context, email, password string) (*Identity, error) {
	f.lastRegisterEmail = email
	return f.registerID, f.registerErr
}

func (f *fakeProvider) SignOut(ctx context.Context) error { return f.signOutErr }

func (f *fakeProvider) SendPasswordReset(ctx context.Context, email string) error {
	f.resetCalls++
	return f.resetErr
}

func (f *fakeProvider) CurrentToken(ctx context.Context) (string, error) {
	return f.tokenRet, f.tokenErr
}

type fakeWarmer struct {
	seededUID   string
	seededEmail string
	reloadErr   error
	reloads     int
}

func (w *fakeWarmer) Seed(uid, email string) { w.seededUID, w.seededEmail = uid, email }
func (w *fakeWarmer) Reload(ctx context.Context) error {
	w.reloads++
	return w.reloadErr
}

func newStore(t *testing.T, p *fakeProvider, w ProfileWarmer) *Store {
	t.Helper()
	s := NewStore(p, w, nil)
	t.Cleanup(s.Close)
	return s
}

func TestStore_LoadingUntilFirstEmission(t *testing.T) {
	p := &fakeProvider{}
	s := newStore(t, p, nil)

	require.True(t, s.Loading().Get())
	require.False(t, s.IsAuthenticated())

	p.emit(nil)

	require.False(t, s.Loading().Get())
	require.False(t, s.IsAuthenticated())
}

func TestStore_EmissionReplacesSnapshotWholesale(t *testing.T) {
	p := &fakeProvider{}
	s := newStore(t, p, nil)

	p.emit(&Identity{UID: "u1", Email: "a@b.c"})
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "u1", s.User().Get().UID)

	p.emit(nil) // sign-out
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.User().Get())
}

func TestStore_StreamErrorClearsLoadingAndUnblocksAwait(t *testing.T) {
	p := &fakeProvider{}
	s := newStore(t, p, nil)

	p.fail(errors.New("stream broke"))

	require.False(t, s.Loading().Get())
	require.Equal(t, "stream broke", s.Err().Get())

	id, err := s.Await(context.Background())
	require.NoError(t, err)
	require.Nil(t, id)
}

func TestStore_AwaitPendingUntilEmission(t *testing.T) {
	p := &fakeProvider{}
	s := newStore(t, p, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.emit(&Identity{UID: "u1"})
	}()

	id, err := s.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", id.UID)
}

func TestStore_SignInDoesNotSetSnapshotItself(t *testing.T) {
	p := &fakeProvider{signInID: &Identity{UID: "u1", Email: "a@b.c"}}
	s := newStore(t, p, nil)

	require.NoError(t, s.SignIn(context.Background(), "a@b.c", "pw"))

	// The snapshot only changes once the stream emits.
	require.False(t, s.IsAuthenticated())
	p.emit(p.signInID)
	require.True(t, s.IsAuthenticated())
}

func TestStore_SignInMapsProviderCode(t *testing.T) {
	p := &fakeProvider{signInErr: &Error{Code: common.CodeInvalidCredential}}
	s := newStore(t, p, nil)

	err := s.SignIn(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", s.Err().Get())
	require.False(t, s.Loading().Get())
}

func TestStore_SignInReloadsProfileBestEffort(t *testing.T) {
	p := &fakeProvider{signInID: &Identity{UID: "u1"}}
	w := &fakeWarmer{reloadErr: errors.New("profile down")}
	s := newStore(t, p, w)

	// A failing profile reload must not fail the sign-in.
	require.NoError(t, s.SignIn(context.Background(), "a@b.c", "pw"))
	require.Equal(t, 1, w.reloads)
}

func TestStore_RegisterSeedsPlaceholderProfile(t *testing.T) {
	p := &fakeProvider{registerID: &Identity{UID: "u9", Email: "new@b.c"}}
	w := &fakeWarmer{}
	s := newStore(t, p, w)

	require.NoError(t, s.Register(context.Background(), "new@b.c", "longenough"))
	require.Equal(t, "u9", w.seededUID)
	require.Equal(t, "new@b.c", w.seededEmail)
	require.False(t, s.IsAuthenticated()) // identity arrives via stream only
}

func TestStore_RegisterMapsDuplicateAccount(t *testing.T) {
	p := &fakeProvider{registerErr: &Error{Code: common.CodeEmailInUse}}
	s := newStore(t, p, nil)

	err := s.Register(context.Background(), "a@b.c", "pw123456")
	require.Error(t, err)
	require.Equal(t, "An account with this email already exists", s.Err().Get())
}

func TestStore_SignOutSurfacesAndReraisesFailure(t *testing.T) {
	p := &fakeProvider{signOutErr: errors.New("provider down")}
	s := newStore(t, p, nil)

	err := s.SignOut(context.Background())
	require.Error(t, err)
	require.Equal(t, "provider down", s.Err().Get())
}

func TestStore_PasswordResetAlwaysSucceeds(t *testing.T) {
	p := &fakeProvider{resetErr: errors.New("no such account")}
	s := newStore(t, p, nil)

	require.NoError(t, s.SendPasswordReset(context.Background(), "ghost@b.c"))
	require.Equal(t, 1, p.resetCalls)
	require.Equal(t, "", s.Err().Get())
}

func TestMessage_UnknownCodeFallsBack(t *testing.T) {
	require.Equal(t, "Authentication failed. Please try again.",
		Message(&Error{Code: "weird-new-code"}))
	require.Equal(t, "Authentication failed. Please try again.",
		Message(errors.New("not a provider error")))
}
