package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func doGet(t *testing.T, tr *AuthTransport, url string) *http.Response {
	t.Helper()
	client := &http.Client{Transport: tr}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAuthTransport_AttachesBearerWhenAuthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Authenticated: func() bool { return true },
		Token:         func(*http.Request) (string, error) { return "tok123", nil },
	}
	doGet(t, tr, srv.URL)

	require.Equal(t, "Bearer tok123", gotAuth)
}

func TestAuthTransport_ForwardsUnmodifiedWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	tokenCalls := 0
	tr := &AuthTransport{
		Authenticated: func() bool { return false },
		Token: func(*http.Request) (string, error) {
			tokenCalls++
			return "tok123", nil
		},
	}
	doGet(t, tr, srv.URL)

	require.Empty(t, gotAuth)
	require.Zero(t, tokenCalls)
}

func TestAuthTransport_TokenFailureForwardsUnmodified(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Authenticated: func() bool { return true },
		Token:         func(*http.Request) (string, error) { return "", errors.New("refresh failed") },
	}
	resp := doGet(t, tr, srv.URL)

	require.Empty(t, gotAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthTransport_401FiresSessionExpiredExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	expired := 0
	tr := &AuthTransport{OnSessionExpired: func() { expired++ }}
	resp := doGet(t, tr, srv.URL)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, 1, expired)
}

func TestAuthTransport_403And500PassThroughWithoutInvalidation(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		expired := 0
		tr := &AuthTransport{OnSessionExpired: func() { expired++ }}
		resp := doGet(t, tr, srv.URL)

		require.Equal(t, status, resp.StatusCode)
		require.Zero(t, expired, "status %d must not invalidate the session", status)
		srv.Close()
	}
}
