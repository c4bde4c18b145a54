package keystore

import "errors"

var (
	// ErrKeyMissing is returned when an operation requires an active key
	// and none has been generated yet.
	ErrKeyMissing = errors.New("keystore: no active key")

	// ErrKeyDecryptFailed is returned when AES-GCM tag verification fails
	// while unwrapping a stored private key, which indicates either secret
	// mismatch or corrupted ciphertext.
	ErrKeyDecryptFailed = errors.New("keystore: private key decryption failed")

	// ErrKeyFormatInvalid is returned when stored key material does not
	// parse as the expected PEM/SPKI or raw Ed25519 form.
	ErrKeyFormatInvalid = errors.New("keystore: malformed key material")

	// ErrConfigInvalid is returned when the deployment-wide encryption
	// secret is absent or not exactly 32 bytes once hex-decoded.
	ErrConfigInvalid = errors.New("keystore: encryption secret must be 64 hex characters (32 bytes)")

	// ErrUnknownKeyID is returned by lookups (for example during
	// rotation-aware verification) that reference a key identifier this
	// store has never issued.
	ErrUnknownKeyID = errors.New("keystore: unknown key id")

	// ErrJWKUnsupported is returned by ImportJWK when given a JWK that is
	// not an OKP/Ed25519 key, since this store fixes EdDSA only (§1).
	ErrJWKUnsupported = errors.New("keystore: only OKP/Ed25519 JWKs are supported")
)
