package signer

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/grcorsair/trustcore/cpoe"
)

// Verify checks jwt's structure, signature (against each of keys in turn),
// expiry, and credential-subject schema invariants (P1). It never trusts a
// caller-supplied clock: now must be provided explicitly so callers control
// skew and testability.
//
// IssuerTier on a successful result is always TierSelfSigned: Verify has no
// notion of DID resolution or platform endorsement. Callers that have
// resolved the issuer DID via didweb and confirmed the signing key is
// published there should upgrade the result to TierPlatformVerified
// themselves (this is exactly what package verifier does).
func Verify(jwt string, keys []TrustedKey, now time.Time) (*VerificationResult, error) {
	segments := strings.Split(jwt, ".")
	if len(segments) != 3 {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, ErrInvalidJWT
	}
	headerSeg, payloadSeg, sigSeg := segments[0], segments[1], segments[2]

	headerBytes, err := base64.RawURLEncoding.DecodeString(headerSeg)
	if err != nil {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, fmt.Errorf("%w: header: %v", ErrInvalidJWT, err)
	}
	var h header
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, fmt.Errorf("%w: header json: %v", ErrInvalidJWT, err)
	}
	if h.Alg != "EdDSA" {
		return &VerificationResult{Valid: false, Reason: ErrUnsupportedAlg.Error()}, ErrUnsupportedAlg
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadSeg)
	if err != nil {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, fmt.Errorf("%w: payload: %v", ErrInvalidJWT, err)
	}
	var claims cpoe.Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, fmt.Errorf("%w: payload json: %v", ErrInvalidJWT, err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(sigSeg)
	if err != nil {
		return &VerificationResult{Valid: false, Reason: ErrInvalidJWT.Error()}, fmt.Errorf("%w: signature: %v", ErrInvalidJWT, err)
	}

	signingInput := []byte(headerSeg + "." + payloadSeg)
	var verifiedBy *TrustedKey
	for i := range keys {
		if ed25519.Verify(keys[i].Public, signingInput, sig) {
			verifiedBy = &keys[i]
			break
		}
	}
	if verifiedBy == nil {
		return &VerificationResult{Valid: false, Reason: ErrSignatureInvalid.Error()}, ErrSignatureInvalid
	}

	if err := validateSchema(claims.VC.CredentialSubject); err != nil {
		return &VerificationResult{Valid: false, Reason: err.Error()}, err
	}

	expiresAt := time.Unix(claims.ExpiresAt, 0).UTC()
	if !now.Before(expiresAt) {
		return &VerificationResult{
			Valid:       false,
			Reason:      ErrExpired.Error(),
			SignedBy:    h.Kid,
			GeneratedAt: time.Unix(claims.IssuedAt, 0).UTC(),
			ExpiresAt:   expiresAt,
			Claims:      &claims,
		}, ErrExpired
	}

	subject := claims.VC.CredentialSubject
	return &VerificationResult{
		Valid:       true,
		SignedBy:    h.Kid,
		IssuerTier:  TierSelfSigned,
		GeneratedAt: time.Unix(claims.IssuedAt, 0).UTC(),
		ExpiresAt:   expiresAt,
		Provenance:  subject.Provenance,
		Summary:     subject.Summary,
		Scope:       subject.Scope,
		MarqueID:    claims.JWTID,
		Claims:      &claims,
	}, nil
}

// validateSchema enforces the credential subject's P1 summary arithmetic
// invariant and the presence of the fixed type discriminator.
func validateSchema(subject cpoe.Subject) error {
	if subject.Type != cpoe.SubjectType {
		return fmt.Errorf("%w: unexpected credentialSubject.type %q", ErrSchemaInvalid, subject.Type)
	}
	sum := subject.Summary
	if sum.ControlsPassed+sum.ControlsFailed != sum.ControlsTested {
		return fmt.Errorf("%w: controlsPassed+controlsFailed != controlsTested", ErrSchemaInvalid)
	}
	if sum.ControlsTested < 0 || sum.ControlsPassed < 0 || sum.ControlsFailed < 0 {
		return fmt.Errorf("%w: negative control counts", ErrSchemaInvalid)
	}
	return nil
}
