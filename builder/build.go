package builder

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/grcorsair/trustcore/cpoe"
)

const defaultFramework = "default"

// Build normalizes req into an unsigned CPOE VC envelope (§4.4). It never
// signs; the caller passes Result.VC on to sdjwt.Issue and/or signer.Sign.
func Build(req Request) (*Result, error) {
	if len(req.Evidence.Controls) == 0 {
		return nil, ErrNoControls
	}
	if req.DID == "" {
		return nil, ErrMissingDID
	}
	if req.ExpiryDays <= 0 {
		return nil, ErrInvalidExpiry
	}

	scope := req.Scope
	if scope == "" {
		scope = req.Evidence.Metadata.Scope
	}
	if scope == "" {
		return nil, ErrMissingScope
	}

	summary, frameworks := summarize(req.Evidence.Controls)

	provenance := cpoe.Provenance{
		Source:         classifySource(req.Format),
		SourceIdentity: req.Evidence.Metadata.Issuer,
		SourceDate:     req.Evidence.Metadata.Date,
		SourceDocument: req.SourceDocumentHash,
	}

	subject := cpoe.Subject{
		Type:       cpoe.SubjectType,
		Scope:      scope,
		Provenance: provenance,
		Summary:    summary,
		Frameworks: frameworks,
		Extensions: req.Evidence.Extensions,
	}

	return &Result{
		MarqueID: uuid.NewString(),
		VC: cpoe.VC{
			Context:           cpoe.DefaultContext,
			Type:              cpoe.DefaultTypes,
			CredentialSubject: subject,
		},
	}, nil
}

// summarize counts pass/fail across all controls and groups them by
// framework, enforcing P1 (controlsTested = passed + failed and
// overallScore = round(100*passed/max(tested,1))) by construction rather
// than trusting caller-supplied totals.
func summarize(controls []EvidenceControl) (cpoe.Summary, map[string]cpoe.Framework) {
	frameworks := make(map[string]cpoe.Framework)
	var passed, failed int

	for _, c := range controls {
		fw := c.Framework
		if fw == "" {
			fw = defaultFramework
		}
		status := strings.ToLower(strings.TrimSpace(c.Status))
		if status == "pass" {
			passed++
		} else {
			failed++
		}

		entry := frameworks[fw]
		entry.Controls = append(entry.Controls, cpoe.Control{
			ControlID: c.ID,
			Status:    status,
		})
		frameworks[fw] = entry
	}

	tested := passed + failed
	denominator := tested
	if denominator == 0 {
		denominator = 1
	}
	score := int(math.Round(100 * float64(passed) / float64(denominator)))

	return cpoe.Summary{
		ControlsTested: tested,
		ControlsPassed: passed,
		ControlsFailed: failed,
		OverallScore:   score,
	}, frameworks
}
