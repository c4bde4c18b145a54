package verifier_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/didweb"
	"github.com/grcorsair/trustcore/internal/cryptotest"
	"github.com/grcorsair/trustcore/policy"
	"github.com/grcorsair/trustcore/signer"
	"github.com/grcorsair/trustcore/verifier"
)

const issuerDID = "did:web:issuer.example"

func init() {
	logger.New("NOOP")
}

func TestVerifyHappyPathAgainstTrustedSet(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, _ := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	v := verifier.New(ks, nil)
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, signer.TierSelfSigned, result.IssuerTier)
	require.Equal(t, "acme-prod", result.Scope)
	require.Equal(t, 1, result.Summary.ControlsTested)
}

func TestVerifyRejectsForeignSigner(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	otherKs := cryptotest.NewTestKeystore(t)
	foreignKey, _ := cryptotest.TestSignerKey(t, otherKs)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, foreignKey, "did:web:other.example", now)

	v := verifier.New(ks, nil)
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.Error(t, err)
	require.False(t, result.Valid)
	require.Equal(t, "signature_invalid", result.Reason)
}

func TestVerifyRejectsExpired(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, _ := cryptotest.TestSignerKey(t, ks)
	past := time.Now().UTC().Add(-60 * 24 * time.Hour)
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, past)

	v := verifier.New(ks, nil)
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: time.Now().UTC()})
	require.Error(t, err)
	require.False(t, result.Valid)
	require.Equal(t, "expired", result.Reason)
}

func TestVerifyRejectsOversizeInput(t *testing.T) {
	v := verifier.New(nil, nil, verifier.WithMaxBytes(10))
	result, err := v.Verify(context.Background(), verifier.Input{Wire: "way-too-long-to-fit", Now: time.Now()})
	require.Error(t, err)
	require.Equal(t, "oversize_input", result.Reason)
}

func TestVerifySucceedsAfterKeyRotation(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	oldKey, _ := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, oldKey, issuerDID, now)

	_, _, err := ks.Rotate(context.Background())
	require.NoError(t, err)

	v := verifier.New(ks, nil)
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
}

func TestVerifyInputBindingMismatch(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, _ := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	v := verifier.New(ks, nil)
	result, err := v.Verify(context.Background(), verifier.Input{
		Wire:               wire,
		Now:                now,
		SourceDocumentHash: "sha256:does-not-match",
	})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, "evidence_mismatch", result.Reason)
}

// startDIDServer serves a single did:web document carrying one Ed25519
// verification method under keyFragment, for any path (the resolver's
// documentURL computation isn't re-validated here, only the happy path).
func startDIDServer(t *testing.T, did, keyFragment string, pub ed25519.PublicKey) *httptest.Server {
	t.Helper()
	doc := map[string]any{
		"id": did,
		"verificationMethod": []map[string]any{
			{
				"id":         did + "#" + keyFragment,
				"type":       "JsonWebKey2020",
				"controller": did,
				"publicKeyJwk": map[string]any{
					"kty": "OKP",
					"crv": "Ed25519",
					"x":   base64.RawURLEncoding.EncodeToString(pub),
				},
			},
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// resolverForServer builds a didweb.Resolver whose HTTP client dials srv
// directly regardless of the requested host, since documentURL always
// builds an https://<issuer-host>/... URL and the test server's host is
// different from any issuer DID's host.
func resolverForServer(t *testing.T, srv *httptest.Server) *didweb.Resolver {
	t.Helper()
	serverURL, err := url.Parse(srv.URL)
	require.NoError(t, err)
	client := &http.Client{
		Transport: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return tls.Dial(network, serverURL.Host, &tls.Config{InsecureSkipVerify: true})
			},
		},
	}
	return didweb.NewResolver(nil, didweb.WithHTTPClient(client))
}

func TestVerifyPlatformVerifiedWhenIssuerMatchesPlatformDID(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, kp := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	resolver := resolverForServer(t, startDIDServer(t, issuerDID, kp.KeyID, kp.Public))
	v := verifier.New(ks, resolver, verifier.WithPlatformDID(issuerDID))

	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, signer.TierPlatformVerified, result.IssuerTier)
}

func TestVerifyNotPlatformVerifiedWhenIssuerDiffersFromPlatformDID(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, kp := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	resolver := resolverForServer(t, startDIDServer(t, issuerDID, kp.KeyID, kp.Public))
	v := verifier.New(ks, resolver, verifier.WithPlatformDID("did:web:someone-else.example"))

	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, signer.TierSelfSigned, result.IssuerTier)
}

func TestVerifyPrefersTrustedKeyOverStaleDIDDocument(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, kp := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	// The DID document publishes the same key fragment id but a different,
	// unrelated public key: a stale document that would fail signature
	// verification on its own even though the fragment matches.
	stalePub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	resolver := resolverForServer(t, startDIDServer(t, issuerDID, kp.KeyID, stalePub))

	v := verifier.New(ks, resolver, verifier.WithPlatformDID(issuerDID))
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, signer.TierSelfSigned, result.IssuerTier)
}

func TestVerifyAppliesPolicyWithoutFlippingValid(t *testing.T) {
	ks := cryptotest.NewTestKeystore(t)
	key, _ := cryptotest.TestSignerKey(t, ks)
	now := time.Now().UTC()
	wire := cryptotest.TestSignCPOE(t, key, issuerDID, now)

	evaluator := policy.New(policy.WithMinScore(101))
	v := verifier.New(ks, nil, verifier.WithPolicy(evaluator))
	result, err := v.Verify(context.Background(), verifier.Input{Wire: wire, Now: now})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.NotNil(t, result.PolicyResult)
	require.False(t, result.PolicyResult.Allowed)
}
