package receipt

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/grcorsair/trustcore/canon"
)

// VerifyChain recomputes every prevHash link, verifies every receipt's
// signature against pub, recomputes the chain digest, and compares it to
// claimedChainDigest (the value a CPOE's processProvenance.chainDigest
// asserts). A broken link or digest mismatch flips ChainValid to false
// without needing to know which signatures, if any, also failed (P5).
func VerifyChain(receipts []SignedReceipt, pub ed25519.PublicKey, claimedChainDigest string) (*VerifyResult, error) {
	result := &VerifyResult{ReceiptsTotal: len(receipts)}

	linksIntact := true
	expectedPrev := genesisPrevHash
	for i := range receipts {
		r := receipts[i]
		if r.PrevHash != expectedPrev {
			linksIntact = false
		}
		if r.Reproducible {
			result.ReproducibleSteps++
		}
		if r.Attestation != nil {
			result.AttestedSteps++
		}

		canonical, err := canon.MarshalStruct(r.Receipt)
		if err != nil {
			return nil, err
		}
		sig, err := base64.RawURLEncoding.DecodeString(r.Signature)
		if err != nil {
			continue // counts against ReceiptsVerified below, not fatal
		}
		if ed25519.Verify(pub, canonical, sig) {
			result.ReceiptsVerified++
		}

		expectedPrev, err = canon.HashStruct(r.Receipt)
		if err != nil {
			return nil, err
		}
	}

	digest, err := ChainDigest(receipts)
	if err != nil {
		return nil, err
	}
	result.ChainDigest = digest

	result.ChainValid = linksIntact &&
		result.ReceiptsVerified == result.ReceiptsTotal &&
		digest == claimedChainDigest

	return result, nil
}
