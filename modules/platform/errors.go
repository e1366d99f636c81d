package platform

import "errors"

var (
	// ErrNameRequired is returned when provisioning is attempted with an
	// empty shop name.
	ErrNameRequired = errors.New("tenant name is required")

	// ErrSlugTaken is returned when the registry already holds the
	// generated slug.
	ErrSlugTaken = errors.New("tenant slug already in use")

	// ErrBypassRequired is returned when a registry write is attempted on
	// a session that has not bypassed row-level security. The registry's
	// INSERT policy admits bypassed sessions only.
	ErrBypassRequired = errors.New("platform: operation requires a bypassed session")

	// ErrNoSession is returned when the context carries no bound
	// isolation session.
	ErrNoSession = errors.New("platform: no isolation session in context")
)
