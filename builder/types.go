package builder

import (
	"encoding/json"

	"github.com/grcorsair/trustcore/cpoe"
)

// EvidenceMetadata carries the free-form descriptive fields a caller
// supplies about the evidence being normalized.
type EvidenceMetadata struct {
	Title    string `json:"title"`
	Issuer   string `json:"issuer"`
	Date     string `json:"date"`
	Scope    string `json:"scope"`
	SourceID string `json:"sourceId,omitempty"`
}

// EvidenceControl is one raw control-test result as supplied by the
// caller, before normalization into cpoe.Control.
type EvidenceControl struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Evidence    string `json:"evidence,omitempty"`
	Framework   string `json:"framework,omitempty"`
}

// Evidence is the full input payload normalized into a CPOE.
type Evidence struct {
	Metadata   EvidenceMetadata  `json:"metadata"`
	Controls   []EvidenceControl `json:"controls"`
	Extensions json.RawMessage   `json:"extensions,omitempty"`
}

// Request is the full input to Build.
type Request struct {
	Evidence   Evidence
	Format     string // e.g. "soc2", "scanner", "" (free-form)
	Scope      string // overrides Evidence.Metadata.Scope when set
	DID        string
	ExpiryDays int

	// SourceDocumentHash, if set, is stamped directly into
	// Provenance.SourceDocument instead of being derived. Leave empty to
	// have Build leave SourceDocument unset (callers that want input
	// binding per §4.8 must supply this).
	SourceDocumentHash string
}

// Result is Build's output: an unsigned VC envelope plus the generated
// marqueId, ready for signer.Sign (optionally through sdjwt.Issue first).
type Result struct {
	MarqueID string
	VC       cpoe.VC
}
