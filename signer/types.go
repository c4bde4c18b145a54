package signer

import (
	"crypto/ed25519"
	"time"

	"github.com/grcorsair/trustcore/cpoe"
	"github.com/grcorsair/trustcore/keystore"
)

// Key is anything that can sign a JWS signing-input with Ed25519 and
// report its own key identifier and public key, the generalization of
// massifs.IdentifiableCoseSigner for this module's JWT-VC signing path.
type Key interface {
	KeyID() string
	Public() ed25519.PublicKey
	Sign(signingInput []byte) ([]byte, error)
}

// FromKeypair adapts a keystore.Keypair (active or retired) into a Key.
// Signing a retired key's Key is possible at the type level but Signer.Sign
// refuses it at the call site (§4.1 "retired ... never sign").
func FromKeypair(kp *keystore.Keypair) Key {
	return keypairKey{kp: kp}
}

type keypairKey struct {
	kp *keystore.Keypair
}

func (k keypairKey) KeyID() string { return k.kp.KeyID }

func (k keypairKey) Public() ed25519.PublicKey { return k.kp.Public }

func (k keypairKey) Sign(signingInput []byte) ([]byte, error) {
	return ed25519.Sign(k.kp.Private, signingInput), nil
}

// TrustedKey is a bare public key plus identifier, used for verification
// against a trusted set or a DID-resolved key where no private key is
// available.
type TrustedKey struct {
	KeyFragment string
	Public      ed25519.PublicKey
}

// IssuerTier classifies the trust level of a successful verification.
type IssuerTier string

const (
	TierPlatformVerified IssuerTier = "platform-verified"
	TierSelfSigned       IssuerTier = "self-signed"
	TierUnverifiable     IssuerTier = "unverifiable"
)

// VerificationResult is Signer.Verify's structured outcome, per §4.5.
type VerificationResult struct {
	Valid       bool
	Reason      string
	SignedBy    string
	IssuerTier  IssuerTier
	GeneratedAt time.Time
	ExpiresAt   time.Time
	Provenance  cpoe.Provenance
	Summary     cpoe.Summary
	Scope       string
	MarqueID    string

	// rawClaims is retained so downstream callers (verifier, sdjwt) can
	// re-inspect the decoded payload without re-parsing the JWT.
	Claims *cpoe.Claims
}

// SignInput is the payload Sign assembles into a JWT-VC.
type SignInput struct {
	IssuerDID     string
	MarqueID      string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	MaxExpiryDays int
	VC            cpoe.VC
}
