package common

// AuthorizationHeader carries the bearer credential on authenticated requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is the scheme prefix expected in AuthorizationHeader values.
const BearerPrefix = "Bearer "

// Provider error codes shared between the auth endpoints and the client's
// identity error mapping. The set is fixed; unknown codes fall back to a
// generic message on the client.
const (
	CodeEmailInUse           = "email-already-in-use"
	CodeInvalidEmail         = "invalid-email"
	CodeWeakPassword         = "weak-password"
	CodeRegistrationDisabled = "operation-not-allowed"
	CodeInvalidCredential    = "invalid-credential"
	CodeUserDisabled         = "user-disabled"
	CodeTooManyRequests      = "too-many-requests"
	CodeNetworkFailure       = "network-request-failed"
)
