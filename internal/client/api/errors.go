package api

import (
	"fmt"
	"net/http"

	"github.com/dkrasnova/brandkit/internal/common"
)

// Error is a non-2xx backend response, carrying the envelope's error code
// and message when present.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: %s", http.StatusText(e.StatusCode))
}

// Unwrap maps well-known statuses onto the shared sentinels so callers can
// use errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	default:
		return nil
	}
}
