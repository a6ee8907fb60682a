// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested survey, draft or grant does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates access was resolved and denied.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRequest indicates a missing required identifier or a malformed payload.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict indicates a stale overwrite (version mismatch) or a
	// unique-key collision on create.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates the backing store could not be reached.
	// Never retried here; retries belong to the store layer, if anywhere.
	ErrUnavailable = errors.New("store unavailable")
)
