package config

import (
	"errors"
	"time"
)

// Default values for the optional fields, per §6.
const (
	DefaultMaxExpiryDays       = 365
	DefaultMaxCPOEBytes        = 102400
	DefaultDIDResolveTimeoutMs = 5000
)

// ErrMissingSecret is returned by Validate when KeyEncryptionSecret is
// empty; the exact hex-length/format check itself is keystore's job
// (keystore.ErrConfigInvalid), not duplicated here.
var ErrMissingSecret = errors.New("config: keyEncryptionSecret is required")

// ErrInvalidMaxExpiryDays is returned when MaxExpiryDays is not positive.
var ErrInvalidMaxExpiryDays = errors.New("config: maxExpiryDays must be positive")

// ErrInvalidMaxCPOEBytes is returned when MaxCPOEBytes is not positive.
var ErrInvalidMaxCPOEBytes = errors.New("config: maxCPOEBytes must be positive")

// ErrInvalidDIDTimeout is returned when DIDResolveTimeoutMs is not positive.
var ErrInvalidDIDTimeout = errors.New("config: didResolveTimeoutMs must be positive")

// Config is the deployment-wide configuration enumerated in §6.
type Config struct {
	// KeyEncryptionSecret is the 64-hex-character (32 byte) AES-256-GCM
	// secret keystore.New wraps private key material under. Required.
	KeyEncryptionSecret string

	// PlatformDID is the DID used to classify a verification result as
	// platform-verified versus self-signed.
	PlatformDID string

	// MaxExpiryDays bounds how far in the future Signer.Sign may set exp,
	// relative to iat. Defaults to 365.
	MaxExpiryDays int

	// MaxCPOEBytes bounds the size of a CPOE (JWT or SD-JWT wire form)
	// Verifier will accept. Defaults to 102400 (100 KB per §6).
	MaxCPOEBytes int

	// DIDResolveTimeoutMs bounds a single DID document fetch. Defaults to
	// 5000.
	DIDResolveTimeoutMs int

	// AllowedIssuer optionally restricts policy.Evaluator to a single
	// issuer DID. Empty means no restriction.
	AllowedIssuer string
}

// WithDefaults returns a copy of c with every zero-valued optional field
// set to its documented default.
func (c Config) WithDefaults() Config {
	if c.MaxExpiryDays == 0 {
		c.MaxExpiryDays = DefaultMaxExpiryDays
	}
	if c.MaxCPOEBytes == 0 {
		c.MaxCPOEBytes = DefaultMaxCPOEBytes
	}
	if c.DIDResolveTimeoutMs == 0 {
		c.DIDResolveTimeoutMs = DefaultDIDResolveTimeoutMs
	}
	return c
}

// Validate checks c for internal consistency. It does not validate
// KeyEncryptionSecret's exact hex format; that happens when it reaches
// keystore.New, which is the single source of truth for that check.
func (c Config) Validate() error {
	if c.KeyEncryptionSecret == "" {
		return ErrMissingSecret
	}
	if c.MaxExpiryDays < 0 {
		return ErrInvalidMaxExpiryDays
	}
	if c.MaxCPOEBytes < 0 {
		return ErrInvalidMaxCPOEBytes
	}
	if c.DIDResolveTimeoutMs < 0 {
		return ErrInvalidDIDTimeout
	}
	return nil
}

// DIDResolveTimeout renders DIDResolveTimeoutMs as a time.Duration for
// didweb.WithTimeout.
func (c Config) DIDResolveTimeout() time.Duration {
	return time.Duration(c.DIDResolveTimeoutMs) * time.Millisecond
}
