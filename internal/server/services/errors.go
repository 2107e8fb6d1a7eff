package services

import "errors"

// Error is a service failure carrying the wire-level error code the client
// maps to its user-facing categories. The HTTP layer translates codes to
// status codes.
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

// CodeOf extracts the error code, or "" for uncoded errors.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func coded(code string, err error) *Error {
	return &Error{Code: code, Err: err}
}
