package domain

import "errors"

// Domain errors are returned by storage adapters and the controller and can be
// checked with errors.Is. Vote outcomes (already voted, blank, invalid) are not
// errors.
var (
	// ErrStorageUnavailable is returned when the storage medium cannot be read or written.
	ErrStorageUnavailable = errors.New("votebox: storage unavailable")

	// ErrMalformedState is returned when persisted state cannot be decoded or breaks
	// the tally invariants. It is fatal for the adapter instance that observed it.
	ErrMalformedState = errors.New("votebox: malformed persisted state")

	// ErrInvalidCandidates is returned when a candidate list is empty, contains an
	// empty name or lists the same name twice.
	ErrInvalidCandidates = errors.New("votebox: invalid candidate list")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("votebox: invalid configuration")
)
