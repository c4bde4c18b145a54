package receipt

import "errors"

// ErrMalformedSignature is returned when a receipt's signature field is not
// valid base64url, so VerifyChain cannot even attempt ed25519.Verify.
var ErrMalformedSignature = errors.New("receipt: malformed signature encoding")
