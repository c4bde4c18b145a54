package signer

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/grcorsair/trustcore/canon"
	"github.com/grcorsair/trustcore/cpoe"
)

const maxAllowedExpiryDays = 3650

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
	Kid string `json:"kid"`
}

func b64url(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Sign builds and signs a CPOE JWT-VC. The signing input is always
// base64url(canonicalHeader) + "." + base64url(canonicalPayload): header and
// payload are each run through canon before encoding, so the bytes that get
// signed are identical regardless of Go map or struct field ordering.
func Sign(key Key, in SignInput) (string, error) {
	if in.MaxExpiryDays <= 0 || in.MaxExpiryDays > maxAllowedExpiryDays {
		return "", fmt.Errorf("%w: maxExpiryDays %d out of range", ErrInvalidExpiry, in.MaxExpiryDays)
	}
	lifetime := in.ExpiresAt.Sub(in.IssuedAt)
	if lifetime <= 0 {
		return "", fmt.Errorf("%w: expiresAt must be after issuedAt", ErrInvalidExpiry)
	}
	if lifetime > time.Duration(in.MaxExpiryDays)*24*time.Hour {
		return "", fmt.Errorf("%w: lifetime %s exceeds maxExpiryDays %d", ErrInvalidExpiry, lifetime, in.MaxExpiryDays)
	}

	h := header{
		Alg: "EdDSA",
		Typ: "vc+jwt",
		Kid: in.IssuerDID + "#" + key.KeyID(),
	}
	headerBytes, err := canon.MarshalStruct(h)
	if err != nil {
		return "", fmt.Errorf("signer: canonicalizing header: %w", err)
	}

	claims := cpoe.Claims{
		Issuer:    in.IssuerDID,
		Subject:   in.MarqueID,
		JWTID:     in.MarqueID,
		IssuedAt:  in.IssuedAt.UTC().Unix(),
		ExpiresAt: in.ExpiresAt.UTC().Unix(),
		VC:        in.VC,
		Parley:    cpoe.ParleyVersion,
	}
	payloadBytes, err := canon.MarshalStruct(claims)
	if err != nil {
		return "", fmt.Errorf("signer: canonicalizing payload: %w", err)
	}

	signingInput := b64url(headerBytes) + "." + b64url(payloadBytes)
	sig, err := key.Sign([]byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("signer: signing: %w", err)
	}

	return signingInput + "." + b64url(sig), nil
}
