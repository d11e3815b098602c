package country

import "errors"

var (
	// ErrInvalidRecord marks an upstream record missing its common name or alpha3 code.
	ErrInvalidRecord = errors.New("invalid country record")

	// ErrUpstreamUnavailable covers transport failures and unexpected upstream statuses.
	ErrUpstreamUnavailable = errors.New("countries upstream unavailable")

	// ErrUpstreamMalformed means the upstream body could not be decoded.
	ErrUpstreamMalformed = errors.New("countries upstream returned malformed data")

	// ErrNotFound is returned by single-code lookups with no match.
	ErrNotFound = errors.New("country not found")

	ErrEmptyQuery = errors.New("search query is empty")

	ErrInvalidCode = errors.New("country code must be 2 or 3 letters")
)
