// Package common defines shared constants and sentinel errors used across
// the brandkit client and server. Callers match sentinels with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidArgument marks caller programming errors (bad step numbers,
	// malformed input) that must not be surfaced as transient failures.
	ErrInvalidArgument = errors.New("invalid argument")
)
