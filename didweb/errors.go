package didweb

import "errors"

var (
	// ErrInvalidDID is returned when the input string is not a well-formed
	// did:web identifier.
	ErrInvalidDID = errors.New("didweb: not a valid did:web identifier")

	// ErrNetworkError wraps any transport-level failure (DNS, connect,
	// read, timeout) while fetching the DID document.
	ErrNetworkError = errors.New("didweb: network error resolving did document")

	// ErrBlockedHost is returned when the resolved document host's address
	// falls within a private/reserved range disallowed by P7.
	ErrBlockedHost = errors.New("didweb: host resolves to a blocked address range")

	// ErrInvalidDIDDocument is returned when the fetched document is not
	// valid JSON or does not match the expected DID-document shape.
	ErrInvalidDIDDocument = errors.New("didweb: invalid did document")

	// ErrNoSuitableKey is returned when the DID document has no
	// verificationMethod entry with publicKeyJwk.kty="OKP" and
	// crv="Ed25519".
	ErrNoSuitableKey = errors.New("didweb: no suitable Ed25519 verification method found")

	// ErrRedirectBlocked is returned when the server attempts to redirect
	// the request; DIDResolver follows zero redirects by design.
	ErrRedirectBlocked = errors.New("didweb: server attempted a redirect, which is not followed")
)
