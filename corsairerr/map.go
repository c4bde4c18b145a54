package corsairerr

import (
	"errors"

	"github.com/grcorsair/trustcore/didweb"
	"github.com/grcorsair/trustcore/keystore"
	"github.com/grcorsair/trustcore/receipt"
	"github.com/grcorsair/trustcore/sdjwt"
	"github.com/grcorsair/trustcore/signer"
	"github.com/grcorsair/trustcore/translog"
)

// sentinelKinds associates a package-level sentinel error to the internal
// Kind a boundary layer should report it as. Checked with errors.Is, so a
// wrapped sentinel (via fmt.Errorf("%w", ...) or AppError.Cause) still
// matches.
var sentinelKinds = []struct {
	err  error
	kind Kind
}{
	{keystore.ErrKeyMissing, KindKeyMissing},
	{keystore.ErrKeyDecryptFailed, KindKeyDecryptFailed},
	{keystore.ErrKeyFormatInvalid, KindConfigError},
	{keystore.ErrConfigInvalid, KindConfigError},
	{keystore.ErrUnknownKeyID, KindKeyMissing},
	{keystore.ErrJWKUnsupported, KindConfigError},

	{signer.ErrInvalidExpiry, KindSchemaInvalid},
	{signer.ErrInvalidJWT, KindInvalidJWT},
	{signer.ErrSignatureInvalid, KindSignatureInvalid},
	{signer.ErrExpired, KindExpired},
	{signer.ErrSchemaInvalid, KindSchemaInvalid},
	{signer.ErrUnsupportedAlg, KindInvalidJWT},

	{sdjwt.ErrUnknownField, KindSchemaInvalid},
	{sdjwt.ErrMalformedDisclosure, KindDisclosureMismatch},
	{sdjwt.ErrDisclosureMismatch, KindDisclosureMismatch},

	{didweb.ErrInvalidDID, KindDIDResolutionFailed},
	{didweb.ErrNetworkError, KindDIDResolutionFailed},
	{didweb.ErrBlockedHost, KindBlockedHost},
	{didweb.ErrInvalidDIDDocument, KindDIDResolutionFailed},
	{didweb.ErrNoSuitableKey, KindDIDResolutionFailed},
	{didweb.ErrRedirectBlocked, KindBlockedHost},

	{translog.ErrStatementTooLarge, KindOversizeInput},
	{translog.ErrStatementMalformed, KindInvalidJWT},
	{translog.ErrEntryNotFound, KindKeyMissing},
	{translog.ErrInvalidPageSize, KindSchemaInvalid},
	{translog.ErrEmptyLog, KindLogAppendFailed},
	{translog.ErrCheckpointInvalid, KindTreeProofFailed},

	{receipt.ErrMalformedSignature, KindChainBroken},
}

// Classify walks err's chain against the known sentinel errors and returns
// the matching Kind, or ok=false if err (or nothing it wraps) is recognized.
func Classify(err error) (Kind, bool) {
	for _, candidate := range sentinelKinds {
		if errors.Is(err, candidate.err) {
			return candidate.kind, true
		}
	}
	return "", false
}

// Wrap classifies err via Classify and wraps it as an *AppError, falling
// back to KindConfigError if err matches no known sentinel. Callers that
// already know the Kind should use New instead.
func Wrap(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	kind, ok := Classify(err)
	if !ok {
		kind = KindConfigError
	}
	return New(kind, "", err)
}
