// Package identity tracks who is signed in right now. The Store wraps the
// external auth provider's asynchronous identity stream into a single
// current-identity snapshot plus loading/error state, and exposes the
// user-invoked auth actions (sign-in, registration, sign-out).
package identity

import "context"

// Identity is the provider-issued record for a signed-in user. It is
// replaced wholesale on every stream emission and never mutated in place;
// consumers read a snapshot.
type Identity struct {
	UID   string
	Email string
}

// Provider is the external identity provider. Implementations deliver an
// asynchronous stream of identity-or-nil events and expose request/response
// auth operations that fail with a provider-defined error code (see Error).
type Provider interface {
	// AuthState subscribes fn to the identity stream. The provider delivers
	// the current state to a new subscriber as soon as it is known, then
	// every subsequent change (sign-in, sign-out, token refresh). A non-nil
	// err marks a stream failure; id is nil in that case.
	AuthState(fn func(id *Identity, err error)) (cancel func())

	SignIn(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error

	// SendPasswordReset requests a reset email. Callers are expected to
	// treat the outcome as opaque (anti-enumeration).
	SendPasswordReset(ctx context.Context, email string) error

	// CurrentToken returns a short-lived credential for the signed-in user.
	CurrentToken(ctx context.Context) (string, error)
}
