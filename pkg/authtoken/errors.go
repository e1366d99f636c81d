package authtoken

import "errors"

var (
	ErrInvalidToken            = errors.New("authtoken: invalid token")
	ErrExpiredToken            = errors.New("authtoken: token is expired")
	ErrMissingSigningKey       = errors.New("authtoken: missing signing key")
	ErrUnexpectedSigningMethod = errors.New("authtoken: unexpected signing method")
)
