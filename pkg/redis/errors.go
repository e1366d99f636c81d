package redis

import "errors"

var (
	// ErrInvalidConnectionURL means REDIS_URL could not be parsed.
	ErrInvalidConnectionURL = errors.New("invalid redis connection url")

	// ErrNotReady means the server never answered a ping within the
	// connect timeout.
	ErrNotReady = errors.New("redis not ready within connect timeout")

	// ErrHealthcheckFailed wraps ping failures from the readiness probe.
	ErrHealthcheckFailed = errors.New("redis ping failed")
)
