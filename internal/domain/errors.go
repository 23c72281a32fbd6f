package domain

import "errors"

// Sentinel errors shared across layers. Handlers map these onto HTTP
// status codes; repositories and the auth stack wrap them with context.
var (
	// ErrItemNotFound covers both "no such item" and "item owned by another
	// user" - the two are intentionally indistinguishable so lookups never
	// leak the existence of other users' items.
	ErrItemNotFound = errors.New("item not found")

	// ErrUnauthenticated is the request-boundary rejection for any
	// credential failure (missing/malformed header, bad subject).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken means the bearer token failed cryptographic or
	// claim verification (signature, alg, exp, aud, iss, header shape).
	ErrInvalidToken = errors.New("invalid token")

	// ErrSigningKeyNotFound means the token's kid has no match in the
	// published key set. This is an authentication failure, not an
	// infrastructure one.
	ErrSigningKeyNotFound = errors.New("signing key not found")

	// ErrKeySetUnavailable means the remote key set could not be fetched.
	// It maps to 503: a dependency outage, not a caller error.
	ErrKeySetUnavailable = errors.New("key set unavailable")

	// ErrInvalidInput marks business-rule violations caught before storage.
	ErrInvalidInput = errors.New("invalid input")
)
