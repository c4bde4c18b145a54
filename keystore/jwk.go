package keystore

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

// JWK is the RFC 8037 OKP/Ed25519 JSON Web Key shape used by ExportJWK,
// ImportJWK, and the JWKS trust anchor document (§6). D is populated only
// when exporting a private key for backup/migration and is always empty
// from TrustedSet-derived exports.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d,omitempty"`
	Kid string `json:"kid,omitempty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
}

// ExportJWK renders kp's public key (and, if includePrivate is true, its
// private key) as an OKP/Ed25519 JWK.
func ExportJWK(kp *Keypair, includePrivate bool) JWK {
	jwk := JWK{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(kp.Public),
		Kid: kp.KeyID,
		Use: "sig",
		Alg: "EdDSA",
	}
	if includePrivate && len(kp.Private) == ed25519.PrivateKeySize {
		// The "d" field is the 32-byte seed, not the 64-byte expanded
		// private key.
		jwk.D = base64.RawURLEncoding.EncodeToString(kp.Private.Seed())
	}
	return jwk
}

// ImportJWK reconstructs a Keypair from a JWK previously produced by
// ExportJWK (or any RFC 8037 compliant OKP/Ed25519 JWK carrying a seed in
// "d"). It fails with ErrJWKUnsupported for any non-OKP/Ed25519 key and
// with ErrKeyFormatInvalid for malformed base64url fields.
func ImportJWK(jwk JWK) (*Keypair, error) {
	if jwk.Kty != "OKP" || jwk.Crv != "Ed25519" {
		return nil, ErrJWKUnsupported
	}
	if jwk.D == "" {
		return nil, fmt.Errorf("%w: missing private seed \"d\"", ErrKeyFormatInvalid)
	}
	seed, err := base64.RawURLEncoding.DecodeString(jwk.D)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, ErrKeyFormatInvalid
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Keypair{
		KeyID:   jwk.Kid,
		Public:  priv.Public().(ed25519.PublicKey),
		Private: priv,
		Status:  StatusActive,
	}, nil
}
