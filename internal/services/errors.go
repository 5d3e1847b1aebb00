package services

import "errors"

var (
	// ErrInvalidScope means the caller is unauthenticated or names a user that does not exist.
	ErrInvalidScope = errors.New("invalid scope")
	// ErrUnauthorized means the supplied credentials did not match.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrNotFound means the record is absent or not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a uniqueness constraint was hit and could not be resolved.
	ErrConflict = errors.New("already exists")
	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUpstreamUnavailable means the generative-text provider failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
