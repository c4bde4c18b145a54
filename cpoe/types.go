// Package cpoe defines the fixed CPOE credential-subject schema and JWT
// envelope of §3. These are plain tagged structs, not a general-purpose
// credential framework (§1 Non-goals): every field the schema allows is
// named explicitly, and the only place arbitrary caller data is accepted
// is the opaque Extensions pass-through.
package cpoe

import "encoding/json"

// SourceKind classifies how a CPOE's evidence was produced.
type SourceKind string

const (
	SourceSelf    SourceKind = "self"
	SourceTool    SourceKind = "tool"
	SourceAuditor SourceKind = "auditor"
)

// Provenance records where the evidence behind a CPOE came from and binds
// the CPOE to its input document via a hex sha-256 digest.
type Provenance struct {
	Source         SourceKind `json:"source"`
	SourceIdentity string     `json:"sourceIdentity,omitempty"`
	SourceDate     string     `json:"sourceDate,omitempty"`
	SourceDocument string     `json:"sourceDocument,omitempty"`
}

// Summary is the aggregate pass/fail scoring for a CPOE. Its invariants
// (P1) are enforced by builder.Compute, never trusted from caller input.
type Summary struct {
	ControlsTested int `json:"controlsTested"`
	ControlsPassed int `json:"controlsPassed"`
	ControlsFailed int `json:"controlsFailed"`
	OverallScore   int `json:"overallScore"`
}

// Control is one control-test result within a framework.
type Control struct {
	ControlID string `json:"controlId"`
	Status    string `json:"status"`
}

// Framework groups controls tested under a named compliance framework
// (e.g. "SOC2", "ISO27001").
type Framework struct {
	Controls []Control `json:"controls"`
}

// ProcessProvenance summarizes the process-receipt chain (§4.7) that
// produced a CPOE, when one was captured.
type ProcessProvenance struct {
	ChainDigest       string `json:"chainDigest"`
	ReceiptCount      int    `json:"receiptCount"`
	ChainVerified     bool   `json:"chainVerified"`
	ReproducibleSteps int    `json:"reproducibleSteps"`
	AttestedSteps     int    `json:"attestedSteps"`
}

// SubjectType is the fixed, never-hidden discriminator for every CPOE
// credential subject.
const SubjectType = "CorsairCPOE"

// Subject is the credential-subject payload of a CPOE, embedded in the
// JWT-VC's "vc.credentialSubject" claim.
type Subject struct {
	Type              string                `json:"type"`
	Scope             string                `json:"scope"`
	Provenance        Provenance            `json:"provenance"`
	Summary           Summary               `json:"summary"`
	Frameworks        map[string]Framework  `json:"frameworks,omitempty"`
	ProcessProvenance *ProcessProvenance    `json:"processProvenance,omitempty"`
	Extensions        json.RawMessage       `json:"extensions,omitempty"`

	// SD (sd) and SDAlg (_sd_alg) are populated only once sdjwt.Issue has
	// wrapped selected fields into disclosures; a freshly built Subject
	// from builder never carries these.
	SD    []string `json:"_sd,omitempty"`
	SDAlg string   `json:"_sd_alg,omitempty"`
}

// CredentialSchema and CredentialStatus are intentionally absent: the
// fixed CorsairCPOE schema has no pluggable schema registry and no
// revocation-list mechanism beyond key retirement and expiry (§1
// Non-goals).

// VC is the W3C Verifiable Credential envelope wrapping Subject.
type VC struct {
	Context           []string `json:"@context"`
	Type              []string `json:"type"`
	CredentialSubject Subject  `json:"credentialSubject"`
}

// DefaultContext and DefaultTypes are the fixed VC envelope values this
// module always emits.
var (
	DefaultContext = []string{"https://www.w3.org/2018/credentials/v1"}
	DefaultTypes   = []string{"VerifiableCredential", "CorsairCPOECredential"}
)

// Claims is the full set of registered and custom JWT claims carried by a
// CPOE's JWT-VC payload (§3 "JWT envelope").
type Claims struct {
	Issuer    string `json:"iss"`
	Subject   string `json:"sub"`
	JWTID     string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	VC        VC     `json:"vc"`
	Parley    string `json:"parley"`
}

// ParleyVersion is the fixed custom-claim value every CPOE envelope
// carries.
const ParleyVersion = "2.0"
