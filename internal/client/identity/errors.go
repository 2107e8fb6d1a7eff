package identity

import (
	"errors"

	"github.com/dkrasnova/brandkit/internal/common"
)

// Error is a provider failure carrying the provider-defined code. The code
// set is fixed (common.Code*); anything else maps to a generic message.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the provider error code from err, or "" when err carries
// none.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// Message maps a provider failure to one of the fixed user-facing
// categories. Unknown codes (and non-provider errors) fall back to a
// generic message rather than leaking raw provider detail.
func Message(err error) string {
	switch CodeOf(err) {
	case common.CodeEmailInUse:
		return "An account with this email already exists"
	case common.CodeInvalidEmail:
		return "Please enter a valid email"
	case common.CodeWeakPassword:
		return "Password must be at least 8 characters"
	case common.CodeRegistrationDisabled:
		return "Registration is currently disabled"
	case common.CodeInvalidCredential:
		return "Invalid email or password"
	case common.CodeUserDisabled:
		return "This account has been disabled"
	case common.CodeTooManyRequests:
		return "Too many failed attempts. Please try again later."
	case common.CodeNetworkFailure:
		return "Network error. Please check your connection."
	default:
		return "Authentication failed. Please try again."
	}
}
