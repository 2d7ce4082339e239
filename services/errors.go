package services

import "errors"

// Engine error taxonomy. Controllers map these to HTTP statuses with
// errors.Is; anything unmatched surfaces as a 500.
var (
	// ErrNotFound: a referenced log or entry does not exist, or the
	// external food search matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrNormalization: the lookup result is malformed or missing
	// required nutrition fields. The triggering input is never persisted.
	ErrNormalization = errors.New("nutrition data malformed")

	// ErrLookupTimeout: the external search was cancelled or timed out.
	ErrLookupTimeout = errors.New("food lookup timed out")

	// ErrLookupUnavailable: the external search failed transiently. The
	// caller may retry; the engine never retries on its own.
	ErrLookupUnavailable = errors.New("food lookup unavailable")

	// ErrConflict: a storage-level uniqueness race.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized: the log belongs to a different user.
	ErrUnauthorized = errors.New("unauthorized")
)
