package session

import "errors"

var (
	// ErrInvalidSession marks a session a store cannot persist, such as
	// one without a token.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired marks a session past its lifetime.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound means the token resolved to nothing.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration means the random source failed while minting.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStoreFailure wraps backend errors from a store.
	ErrStoreFailure = errors.New("session.store_failure")
)
