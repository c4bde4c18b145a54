package sdjwt_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/cpoe"
	"github.com/grcorsair/trustcore/sdjwt"
	"github.com/grcorsair/trustcore/signer"
)

type rawKey struct {
	keyID string
	pub   ed25519.PublicKey
	priv  ed25519.PrivateKey
}

func (k rawKey) KeyID() string                  { return k.keyID }
func (k rawKey) Public() ed25519.PublicKey      { return k.pub }
func (k rawKey) Sign(in []byte) ([]byte, error) { return ed25519.Sign(k.priv, in), nil }

func testKey(t *testing.T) rawKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return rawKey{keyID: "key-1", pub: pub, priv: priv}
}

func testInput(iat time.Time) signer.SignInput {
	return signer.SignInput{
		IssuerDID:     "did:web:issuer.example",
		MarqueID:      "marque-1",
		IssuedAt:      iat,
		ExpiresAt:     iat.Add(30 * 24 * time.Hour),
		MaxExpiryDays: 365,
		VC: cpoe.VC{
			Context: cpoe.DefaultContext,
			Type:    cpoe.DefaultTypes,
			CredentialSubject: cpoe.Subject{
				Type:  cpoe.SubjectType,
				Scope: "acme-prod",
				Summary: cpoe.Summary{
					ControlsTested: 2, ControlsPassed: 1, ControlsFailed: 1, OverallScore: 50,
				},
				Frameworks: map[string]cpoe.Framework{
					"SOC2": {Controls: []cpoe.Control{{ControlID: "C1", Status: "pass"}}},
				},
			},
		},
	}
}

func TestIssuePresentVerifyPartialDisclosure(t *testing.T) {
	key := testKey(t)
	iat := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	wire, err := sdjwt.Issue(key, testInput(iat), []string{"summary", "frameworks"})
	require.NoError(t, err)

	presented, err := sdjwt.Present(wire, []string{"summary"})
	require.NoError(t, err)

	trusted := []signer.TrustedKey{{KeyFragment: key.keyID, Public: key.pub}}
	result, err := sdjwt.Verify(presented, trusted, iat.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, result.JWT.Valid)
	require.Len(t, result.DisclosedClaims, 1)
	require.Contains(t, result.DisclosedClaims, "summary")
	require.NotContains(t, result.DisclosedClaims, "frameworks")
	require.Len(t, result.UndisclosedDigests, 1)
}

func TestIssueWithNoDisclosuresStillVerifies(t *testing.T) {
	key := testKey(t)
	iat := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	wire, err := sdjwt.Issue(key, testInput(iat), nil)
	require.NoError(t, err)

	trusted := []signer.TrustedKey{{KeyFragment: key.keyID, Public: key.pub}}
	result, err := sdjwt.Verify(wire, trusted, iat.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, result.JWT.Valid)
	require.Empty(t, result.DisclosedClaims)
}

func TestVerifyRejectsTamperedDisclosure(t *testing.T) {
	key := testKey(t)
	iat := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	wire, err := sdjwt.Issue(key, testInput(iat), []string{"summary"})
	require.NoError(t, err)

	tampered := wire[:len(wire)-2] + "XY~"

	trusted := []signer.TrustedKey{{KeyFragment: key.keyID, Public: key.pub}}
	_, err = sdjwt.Verify(tampered, trusted, iat.Add(time.Hour))
	require.Error(t, err)
}

func TestIssueRejectsUnknownField(t *testing.T) {
	key := testKey(t)
	iat := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := sdjwt.Issue(key, testInput(iat), []string{"type"})
	require.ErrorIs(t, err, sdjwt.ErrUnknownField)
}

func TestPresentLeavesJWTBytesUnchanged(t *testing.T) {
	key := testKey(t)
	iat := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	wire, err := sdjwt.Issue(key, testInput(iat), []string{"summary", "frameworks"})
	require.NoError(t, err)

	jwtBefore := strings.SplitN(wire, "~", 2)[0]
	presented, err := sdjwt.Present(wire, []string{"summary"})
	require.NoError(t, err)
	jwtAfter := strings.SplitN(presented, "~", 2)[0]
	require.Equal(t, jwtBefore, jwtAfter)
}
