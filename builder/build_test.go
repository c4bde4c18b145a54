package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/builder"
	"github.com/grcorsair/trustcore/cpoe"
)

func TestBuildHappyPath(t *testing.T) {
	req := builder.Request{
		Evidence: builder.Evidence{
			Metadata: builder.EvidenceMetadata{Title: "T", Issuer: "I", Date: "2026-01-01", Scope: "S"},
			Controls: []builder.EvidenceControl{
				{ID: "C1", Status: "pass", Description: "d", Evidence: "e"},
			},
		},
		DID:        "did:web:issuer.example",
		ExpiryDays: 365,
	}
	res, err := builder.Build(req)
	require.NoError(t, err)
	require.NotEmpty(t, res.MarqueID)

	subject := res.VC.CredentialSubject
	require.Equal(t, cpoe.SubjectType, subject.Type)
	require.Equal(t, "S", subject.Scope)
	require.Equal(t, cpoe.SourceSelf, subject.Provenance.Source)
	require.Equal(t, cpoe.Summary{ControlsTested: 1, ControlsPassed: 1, ControlsFailed: 0, OverallScore: 100}, subject.Summary)
}

func TestBuildClassifiesAuditorSource(t *testing.T) {
	req := validRequest()
	req.Format = "SOC-2 Type II"
	res, err := builder.Build(req)
	require.NoError(t, err)
	require.Equal(t, cpoe.SourceAuditor, res.VC.CredentialSubject.Provenance.Source)
}

func TestBuildClassifiesToolSource(t *testing.T) {
	req := validRequest()
	req.Format = "vulnerability-scanner-export"
	res, err := builder.Build(req)
	require.NoError(t, err)
	require.Equal(t, cpoe.SourceTool, res.VC.CredentialSubject.Provenance.Source)
}

func TestBuildSummaryArithmetic(t *testing.T) {
	req := validRequest()
	req.Evidence.Controls = []builder.EvidenceControl{
		{ID: "C1", Status: "pass"},
		{ID: "C2", Status: "pass"},
		{ID: "C3", Status: "fail"},
	}
	res, err := builder.Build(req)
	require.NoError(t, err)
	sum := res.VC.CredentialSubject.Summary
	require.Equal(t, 3, sum.ControlsTested)
	require.Equal(t, 2, sum.ControlsPassed)
	require.Equal(t, 1, sum.ControlsFailed)
	require.Equal(t, sum.ControlsPassed+sum.ControlsFailed, sum.ControlsTested)
	require.Equal(t, 67, sum.OverallScore)
}

func TestBuildRejectsNoControls(t *testing.T) {
	req := validRequest()
	req.Evidence.Controls = nil
	_, err := builder.Build(req)
	require.ErrorIs(t, err, builder.ErrNoControls)
}

func TestBuildRejectsMissingScope(t *testing.T) {
	req := validRequest()
	req.Scope = ""
	req.Evidence.Metadata.Scope = ""
	_, err := builder.Build(req)
	require.ErrorIs(t, err, builder.ErrMissingScope)
}

func TestBuildRejectsMissingDID(t *testing.T) {
	req := validRequest()
	req.DID = ""
	_, err := builder.Build(req)
	require.ErrorIs(t, err, builder.ErrMissingDID)
}

func TestBuildRejectsBadExpiry(t *testing.T) {
	req := validRequest()
	req.ExpiryDays = 0
	_, err := builder.Build(req)
	require.ErrorIs(t, err, builder.ErrInvalidExpiry)
}

func TestBuildGroupsFrameworks(t *testing.T) {
	req := validRequest()
	req.Evidence.Controls = []builder.EvidenceControl{
		{ID: "C1", Status: "pass", Framework: "SOC2"},
		{ID: "C2", Status: "fail", Framework: "ISO27001"},
	}
	res, err := builder.Build(req)
	require.NoError(t, err)
	require.Len(t, res.VC.CredentialSubject.Frameworks, 2)
	require.Len(t, res.VC.CredentialSubject.Frameworks["SOC2"].Controls, 1)
}

func validRequest() builder.Request {
	return builder.Request{
		Evidence: builder.Evidence{
			Metadata: builder.EvidenceMetadata{Scope: "S"},
			Controls: []builder.EvidenceControl{{ID: "C1", Status: "pass"}},
		},
		DID:        "did:web:issuer.example",
		ExpiryDays: 365,
	}
}
