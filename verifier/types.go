package verifier

import (
	"crypto/ed25519"
	"encoding/json"
	"time"

	"github.com/grcorsair/trustcore/cpoe"
	"github.com/grcorsair/trustcore/policy"
	"github.com/grcorsair/trustcore/receipt"
	"github.com/grcorsair/trustcore/signer"
)

// Input is everything a single Verify call needs.
type Input struct {
	// Wire is the CPOE's wire form: a three-segment JWT, optionally
	// followed by "~"-separated SD-JWT disclosures.
	Wire string

	// Now is the clock Verify evaluates expiry against.
	Now time.Time

	// ExtraKeys augments the KeyStore-derived trusted set, for verifying
	// credentials issued under a key this deployment doesn't own.
	ExtraKeys []signer.TrustedKey

	// SourceDocumentHash, if set, must equal the verified credential's
	// provenance.sourceDocument or Verify reports evidence_mismatch (§4.8
	// input-binding sub-check).
	SourceDocumentHash string

	// Receipts and ReceiptChainKey, if both set, are run through
	// receipt.VerifyChain and attached to Result.ChainResult. ReceiptChainKey
	// is the public key the chain's receipts were signed under.
	Receipts        []receipt.SignedReceipt
	ReceiptChainKey ed25519.PublicKey
}

// Result is Verify's structured outcome.
type Result struct {
	Valid      bool
	Reason     string
	SignedBy   string
	IssuerTier signer.IssuerTier

	GeneratedAt time.Time
	ExpiresAt   time.Time
	Provenance  cpoe.Provenance
	Summary     cpoe.Summary
	Scope       string
	MarqueID    string

	DisclosedClaims    map[string]json.RawMessage
	UndisclosedDigests []string

	PolicyResult *policy.Result
	ChainResult  *receipt.VerifyResult
}
