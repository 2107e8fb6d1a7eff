package nav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnova/brandkit/internal/client/guard"
)

func allow(ctx context.Context) (guard.Decision, error) { return guard.Allow(), nil }

func redirectTo(target string) guard.Guard {
	return func(ctx context.Context) (guard.Decision, error) {
		return guard.Redirect(target), nil
	}
}

func TestRouter_AllowedNavigationCommits(t *testing.T) {
	r := NewRouter("/cards", nil, nil)
	r.Handle("/cards", allow)

	got, err := r.Navigate(context.Background(), "/cards")
	require.NoError(t, err)
	require.Equal(t, "/cards", got)
	require.Equal(t, "/cards", r.Current().Get())
}

func TestRouter_GuardRedirectFollowed(t *testing.T) {
	r := NewRouter("/cards", nil, nil)
	r.Handle("/cards", redirectTo("/login"))
	r.Handle("/login", allow)

	got, err := r.Navigate(context.Background(), "/cards")
	require.NoError(t, err)
	require.Equal(t, "/login", got)
	require.Equal(t, "/login", r.Current().Get())
}

func TestRouter_UnknownPathFallsBack(t *testing.T) {
	r := NewRouter("/cards", nil, nil)
	r.Handle("/cards", allow)

	got, err := r.Navigate(context.Background(), "/nope")
	require.NoError(t, err)
	require.Equal(t, "/cards", got)
}

func TestRouter_RedirectLoopCapped(t *testing.T) {
	r := NewRouter("/a", nil, nil)
	r.Handle("/a", redirectTo("/b"))
	r.Handle("/b", redirectTo("/a"))

	_, err := r.Navigate(context.Background(), "/a")
	require.ErrorIs(t, err, ErrRedirectLoop)
	require.Empty(t, r.Current().Get(), "loop must not commit a path")
}

func TestRouter_NilGuardAlwaysAllowed(t *testing.T) {
	r := NewRouter("/cards", nil, nil)
	r.Handle("/login", nil)

	got, err := r.Navigate(context.Background(), "/login")
	require.NoError(t, err)
	require.Equal(t, "/login", got)
}

type dirtyView struct{ dirty bool }

func (v *dirtyView) HasUnsavedChanges() bool { return v.dirty }

func TestRouter_UnsavedChangesVetoNavigation(t *testing.T) {
	r := NewRouter("/cards", func(string) bool { return false }, nil)
	r.Handle("/cards", allow)
	r.Handle("/settings", allow)

	_, err := r.Navigate(context.Background(), "/settings")
	require.NoError(t, err)

	r.SetActive(&dirtyView{dirty: true})
	got, err := r.Navigate(context.Background(), "/cards")
	require.ErrorIs(t, err, ErrCancelled)
	require.Equal(t, "/settings", got)
	require.Equal(t, "/settings", r.Current().Get())
}

func TestRouter_UnsavedChangesDiscardConfirmed(t *testing.T) {
	r := NewRouter("/cards", func(string) bool { return true }, nil)
	r.Handle("/cards", allow)
	r.Handle("/settings", allow)

	_, err := r.Navigate(context.Background(), "/settings")
	require.NoError(t, err)

	r.SetActive(&dirtyView{dirty: true})
	got, err := r.Navigate(context.Background(), "/cards")
	require.NoError(t, err)
	require.Equal(t, "/cards", got)
}

func TestRouter_CleanViewLeavesFreely(t *testing.T) {
	prompted := false
	r := NewRouter("/cards", func(string) bool { prompted = true; return false }, nil)
	r.Handle("/cards", allow)
	r.Handle("/settings", allow)

	_, err := r.Navigate(context.Background(), "/settings")
	require.NoError(t, err)

	r.SetActive(&dirtyView{dirty: false})
	_, err = r.Navigate(context.Background(), "/cards")
	require.NoError(t, err)
	require.False(t, prompted)
}

func TestRouter_GuardContextCancellation(t *testing.T) {
	r := NewRouter("/cards", nil, nil)
	r.Handle("/cards", func(ctx context.Context) (guard.Decision, error) {
		return guard.Decision{}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Navigate(ctx, "/cards")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, r.Current().Get())
}
