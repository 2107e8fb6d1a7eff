// Package httpapi exposes the REST surface consumed by the client.
// Every response body is wrapped in the same envelope:
//
//	{"data": ..., "error": {"code": "...", "message": "..."}}
//
// Exactly one of data and error is set.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/server/services"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &errorBody{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto a status and wire code.
func writeServiceError(w http.ResponseWriter, err error) {
	if code := services.CodeOf(err); code != "" {
		writeError(w, statusForCode(code), code, err.Error())
		return
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not-found", "resource not found")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, common.CodeInvalidCredential, "invalid or expired token")
	case errors.Is(err, common.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid-argument", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func statusForCode(code string) int {
	switch code {
	case common.CodeEmailInUse:
		return http.StatusConflict
	case common.CodeInvalidEmail, common.CodeWeakPassword:
		return http.StatusBadRequest
	case common.CodeInvalidCredential:
		return http.StatusUnauthorized
	case common.CodeUserDisabled, common.CodeRegistrationDisabled:
		return http.StatusForbidden
	case common.CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst. Malformed bodies are a client
// error, not an internal one.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", common.ErrInvalidArgument)
	}
	return nil
}
