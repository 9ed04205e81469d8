package usecase

import "errors"

var (
	// ErrMalformedReference means the tournament URL did not contain
	// both a tournament id and a season id. Fatal before any network
	// call.
	ErrMalformedReference = errors.New("malformed tournament reference")

	// ErrUnresolvableLeague means the fallback branch was needed but
	// no usable league name could be derived.
	ErrUnresolvableLeague = errors.New("league name could not be resolved")

	// ErrNoSeasonsAvailable means the fallback source knows the league
	// but reports no seasons for it.
	ErrNoSeasonsAvailable = errors.New("no seasons available for league")

	// ErrMissingCapability means the fallback capability could not be
	// constructed. Reported to the user, never a crash.
	ErrMissingCapability = errors.New("fallback capability unavailable")
)
