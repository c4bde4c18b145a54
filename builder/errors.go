package builder

import "errors"

var (
	// ErrNoControls is returned when the input evidence names no control
	// results at all; a CPOE with zero tested controls is not a
	// meaningful attestation.
	ErrNoControls = errors.New("builder: evidence contains no controls")

	// ErrMissingScope is returned when neither the request nor the
	// evidence metadata supplies a scope string.
	ErrMissingScope = errors.New("builder: scope is required")

	// ErrMissingDID is returned when the request does not name the
	// issuer DID the resulting CPOE will be signed under.
	ErrMissingDID = errors.New("builder: issuer did is required")

	// ErrInvalidExpiry is returned when ExpiryDays is not positive.
	ErrInvalidExpiry = errors.New("builder: expiryDays must be positive")
)
