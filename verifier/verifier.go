package verifier

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/grcorsair/trustcore/didweb"
	"github.com/grcorsair/trustcore/keystore"
	"github.com/grcorsair/trustcore/policy"
	"github.com/grcorsair/trustcore/receipt"
	"github.com/grcorsair/trustcore/sdjwt"
	"github.com/grcorsair/trustcore/signer"
)

const defaultMaxBytes = 100 * 1024

// Verifier is the §4.8 orchestrator. Construct with New; a zero Verifier is
// not usable.
type Verifier struct {
	keyStore    *keystore.KeyStore
	resolver    *didweb.Resolver
	policy      *policy.Evaluator
	maxBytes    int
	platformDID string
}

// Option configures a Verifier at construction time.
type Option func(*Verifier)

// WithPolicy attaches a policy.Evaluator; every successful Verify call runs
// it and attaches Result.PolicyResult.
func WithPolicy(e *policy.Evaluator) Option {
	return func(v *Verifier) { v.policy = e }
}

// WithMaxBytes overrides the default 100KB wire-size ceiling (§6).
func WithMaxBytes(n int) Option {
	return func(v *Verifier) { v.maxBytes = n }
}

// WithPlatformDID sets the deployment's own DID (config.Config.PlatformDID).
// A successful DID-resolved verification is only classified
// TierPlatformVerified when the credential's issuer DID equals this value
// (§4.5); any other resolvable did:web issuer that verifies is at most
// self-signed.
func WithPlatformDID(did string) Option {
	return func(v *Verifier) { v.platformDID = did }
}

// New builds a Verifier. resolver may be nil, in which case Verify skips
// DID-based verification entirely and goes straight to the trusted set.
func New(ks *keystore.KeyStore, resolver *didweb.Resolver, opts ...Option) *Verifier {
	v := &Verifier{
		keyStore: ks,
		resolver: resolver,
		maxBytes: defaultMaxBytes,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Verify runs in.Wire through the full decision flow of §4.8.
func (v *Verifier) Verify(ctx context.Context, in Input) (*Result, error) {
	if len(in.Wire) > v.maxBytes {
		return &Result{Valid: false, Reason: "oversize_input"}, signer.ErrInvalidJWT
	}

	jwtPart := in.Wire
	if i := strings.IndexByte(jwtPart, '~'); i >= 0 {
		jwtPart = jwtPart[:i]
	}
	if len(strings.Split(jwtPart, ".")) != 3 {
		return &Result{Valid: false, Reason: "invalid_jwt"}, signer.ErrInvalidJWT
	}

	issuerDID, keyFragment, kidErr := decodeKid(jwtPart)

	// The trusted-key verification always runs, regardless of whether DID
	// resolution is even attempted: §4.8 step 5 prefers this outcome
	// whenever it validates, and falls back to it whenever DID resolution
	// doesn't produce a verifiable result.
	trustedCandidate, trustedErr := sdjwt.Verify(in.Wire, v.trustedKeys(in.ExtraKeys), in.Now)
	trustedValid := trustedCandidate != nil && trustedCandidate.JWT != nil && trustedCandidate.JWT.Valid

	var didCandidate *sdjwt.VerifyResult
	var didErr error
	didAttempted := false
	if v.resolver != nil && kidErr == nil {
		if resolved, resolveErr := v.resolver.Resolve(ctx, issuerDID); resolveErr == nil && resolved.KeyFragment == keyFragment {
			didAttempted = true
			didCandidate, didErr = sdjwt.Verify(in.Wire, []signer.TrustedKey{{
				KeyFragment: resolved.KeyFragment,
				Public:      ed25519.PublicKey(resolved.PublicKeyRaw),
			}}, in.Now)
		}
	}
	didValid := didAttempted && didCandidate != nil && didCandidate.JWT != nil && didCandidate.JWT.Valid

	// Prefer the trusted-key outcome whenever it validates, or when DID
	// resolution never produced a verifiable result. This also covers a
	// stale DID document verifying under a different key than the trusted
	// set: the trusted-key result still wins. Fall back to the DID-path
	// result only when trusted-key verification itself failed but DID
	// resolution succeeded.
	sdResult, err := trustedCandidate, trustedErr
	if !trustedValid && didValid {
		sdResult, err = didCandidate, didErr
	}

	if sdResult == nil || sdResult.JWT == nil {
		return &Result{Valid: false, Reason: "signature_invalid"}, err
	}

	var tier signer.IssuerTier
	switch {
	case didValid && v.platformDID != "" && issuerDID == v.platformDID:
		tier = signer.TierPlatformVerified
	case trustedValid:
		tier = signer.TierSelfSigned
	default:
		tier = signer.TierUnverifiable
	}

	jwtResult := sdResult.JWT
	result := &Result{
		Valid:              jwtResult.Valid,
		Reason:             fatalReason(err),
		SignedBy:           jwtResult.SignedBy,
		IssuerTier:         tier,
		GeneratedAt:        jwtResult.GeneratedAt,
		ExpiresAt:          jwtResult.ExpiresAt,
		Provenance:         jwtResult.Provenance,
		Summary:            jwtResult.Summary,
		Scope:              jwtResult.Scope,
		MarqueID:           jwtResult.MarqueID,
		DisclosedClaims:    sdResult.DisclosedClaims,
		UndisclosedDigests: sdResult.UndisclosedDigests,
	}

	if !result.Valid {
		return result, err
	}

	if in.SourceDocumentHash != "" && result.Provenance.SourceDocument != in.SourceDocumentHash {
		result.Valid = false
		result.Reason = "evidence_mismatch"
		return result, nil
	}

	if len(in.Receipts) > 0 && in.ReceiptChainKey != nil {
		chainResult, chainErr := receipt.VerifyChain(in.Receipts, in.ReceiptChainKey, chainDigestClaim(jwtResult))
		if chainErr == nil {
			result.ChainResult = chainResult
		}
	}

	if v.policy != nil && jwtResult.Claims != nil {
		subject := jwtResult.Claims.VC.CredentialSubject
		policyResult := v.policy.Evaluate(policy.Input{
			IssuerDID:     issuerDID,
			Subject:       subject,
			IssuedAt:      result.GeneratedAt,
			Now:           in.Now,
			ChainVerified: result.ChainResult != nil && result.ChainResult.ChainValid,
		})
		result.PolicyResult = &policyResult
	}

	return result, nil
}

// trustedKeys merges the key store's active+retired keys with any
// caller-supplied extras (§4.8 step 4's "trusted set = KeyStore.active ∪
// KeyStore.retired ∪ caller-supplied keys").
func (v *Verifier) trustedKeys(extra []signer.TrustedKey) []signer.TrustedKey {
	var out []signer.TrustedKey
	if v.keyStore != nil {
		for _, kp := range v.keyStore.TrustedSet() {
			out = append(out, signer.TrustedKey{KeyFragment: kp.KeyID, Public: kp.Public})
		}
	}
	out = append(out, extra...)
	return out
}

// decodeKid extracts the issuer DID and key fragment from a JWT's header
// kid claim (format "<issuerDID>#key-<n>", per §6).
func decodeKid(jwtPart string) (issuerDID, keyFragment string, err error) {
	segments := strings.Split(jwtPart, ".")
	if len(segments) != 3 {
		return "", "", signer.ErrInvalidJWT
	}
	headerBytes, decErr := base64.RawURLEncoding.DecodeString(segments[0])
	if decErr != nil {
		return "", "", signer.ErrInvalidJWT
	}
	var h struct {
		Kid string `json:"kid"`
	}
	if jsonErr := json.Unmarshal(headerBytes, &h); jsonErr != nil {
		return "", "", signer.ErrInvalidJWT
	}
	i := strings.LastIndexByte(h.Kid, '#')
	if i < 0 {
		return "", "", signer.ErrInvalidJWT
	}
	return h.Kid[:i], h.Kid[i+1:], nil
}

// fatalReason maps an internal verification error to one of the four
// fatal reason tokens of §4.8. A nil err (the successful case) maps to "".
func fatalReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, signer.ErrSchemaInvalid):
		return "schema_invalid"
	case errors.Is(err, signer.ErrExpired):
		return "expired"
	case errors.Is(err, signer.ErrSignatureInvalid), errors.Is(err, signer.ErrUnsupportedAlg):
		return "signature_invalid"
	case errors.Is(err, signer.ErrInvalidJWT):
		return "invalid_jwt"
	default:
		return "signature_invalid"
	}
}

// chainDigestClaim reads processProvenance.chainDigest off a verified
// credential's claims, or "" if the credential carries none.
func chainDigestClaim(result *signer.VerificationResult) string {
	if result.Claims == nil {
		return ""
	}
	pp := result.Claims.VC.CredentialSubject.ProcessProvenance
	if pp == nil {
		return ""
	}
	return pp.ChainDigest
}
