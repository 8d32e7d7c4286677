// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input; the operation performed no write.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream indicates a metadata provider or hosting collaborator failure.
	ErrUpstream = errors.New("upstream failure")
)
