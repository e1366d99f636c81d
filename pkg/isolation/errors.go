package isolation

import "errors"

var (
	// ErrStoreUnavailable wraps every failure to read or write isolation
	// state. It is fatal for the unit of work: when the store cannot be
	// reached the row-level security policies cannot be evaluated safely,
	// so callers must abort rather than retry.
	ErrStoreUnavailable = errors.New("isolation store unavailable")

	// ErrNoSessionInContext is returned when an operation requires a bound
	// session but the context does not carry one.
	ErrNoSessionInContext = errors.New("no isolation session in context")
)
