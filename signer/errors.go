package signer

import "errors"

var (
	// ErrInvalidExpiry is returned when exp-iat exceeds maxExpiryDays or
	// is not strictly positive.
	ErrInvalidExpiry = errors.New("signer: invalid expiry")

	// ErrInvalidJWT is returned when input bytes are not a well-formed
	// three-segment JWT.
	ErrInvalidJWT = errors.New("signer: malformed jwt")

	// ErrSignatureInvalid is returned when no candidate key's signature
	// verifies against the JWT's signing input.
	ErrSignatureInvalid = errors.New("signer: signature verification failed")

	// ErrExpired is returned when the JWT's exp claim is not in the
	// future.
	ErrExpired = errors.New("signer: credential has expired")

	// ErrSchemaInvalid is returned when the decoded credential subject is
	// missing required fields or violates the summary arithmetic
	// invariant (P1).
	ErrSchemaInvalid = errors.New("signer: credential subject schema invalid")

	// ErrUnsupportedAlg is returned when a JWT header names an algorithm
	// other than EdDSA; this module fixes EdDSA only (§1 Non-goals).
	ErrUnsupportedAlg = errors.New("signer: only EdDSA is supported")
)
