package cryptotest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/builder"
	"github.com/grcorsair/trustcore/cpoe"
	"github.com/grcorsair/trustcore/signer"
)

// TestVC builds a minimal, always-valid CPOE credential subject via
// builder.Build: one passing control under issuerDID, scope "acme-prod".
func TestVC(t *testing.T, issuerDID string) cpoe.VC {
	t.Helper()
	res, err := builder.Build(builder.Request{
		Evidence: builder.Evidence{
			Metadata: builder.EvidenceMetadata{Title: "T", Issuer: "I", Date: "2026-01-01", Scope: "acme-prod"},
			Controls: []builder.EvidenceControl{
				{ID: "C1", Status: "pass", Description: "d", Evidence: "e"},
			},
		},
		DID:        issuerDID,
		ExpiryDays: 365,
	})
	require.NoError(t, err)
	return res.VC
}

// TestSignInput builds a signer.SignInput for issuerDID, issued at iat and
// expiring 30 days later, wrapping TestVC's credential subject.
func TestSignInput(t *testing.T, issuerDID string, iat time.Time) signer.SignInput {
	t.Helper()
	return signer.SignInput{
		IssuerDID:     issuerDID,
		MarqueID:      "marque-test",
		IssuedAt:      iat,
		ExpiresAt:     iat.Add(30 * 24 * time.Hour),
		MaxExpiryDays: 365,
		VC:            TestVC(t, issuerDID),
	}
}

// TestSignCPOE signs TestSignInput(issuerDID, iat) with key and returns the
// resulting JWT-VC wire string.
func TestSignCPOE(t *testing.T, key signer.Key, issuerDID string, iat time.Time) string {
	t.Helper()
	jwt, err := signer.Sign(key, TestSignInput(t, issuerDID, iat))
	require.NoError(t, err)
	return jwt
}
