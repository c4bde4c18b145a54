package sdjwt

import (
	"encoding/json"

	"github.com/grcorsair/trustcore/signer"
)

// VerifyResult is Verify's outcome: the underlying JWT verification result
// plus the disclosures actually presented and what remains hidden.
type VerifyResult struct {
	JWT                *signer.VerificationResult
	DisclosedClaims    map[string]json.RawMessage
	UndisclosedDigests []string
}
