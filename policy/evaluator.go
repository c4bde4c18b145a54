package policy

import (
	"fmt"
	"time"

	"github.com/grcorsair/trustcore/cpoe"
)

// Evaluator holds a fixed set of policy predicates, built once via
// functional options.
type Evaluator struct {
	allowedIssuer         string
	minScore              int
	requiredFrameworks    []string
	requireChainVerified  bool
	requireReproducible   bool
	maxAge                time.Duration
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithAllowedIssuer restricts acceptance to a single issuer DID. An empty
// string (the default) means no issuer restriction, matching §6's "string
// or null" configuration shape.
func WithAllowedIssuer(did string) Option {
	return func(e *Evaluator) { e.allowedIssuer = did }
}

// WithMinScore requires credentialSubject.summary.overallScore to be at
// least score.
func WithMinScore(score int) Option {
	return func(e *Evaluator) { e.minScore = score }
}

// WithRequiredFrameworks requires every named framework to be present in
// credentialSubject.frameworks.
func WithRequiredFrameworks(names ...string) Option {
	return func(e *Evaluator) { e.requiredFrameworks = append([]string{}, names...) }
}

// WithRequireChainVerified requires the caller to assert the process
// receipt chain bound to this CPOE verified successfully.
func WithRequireChainVerified() Option {
	return func(e *Evaluator) { e.requireChainVerified = true }
}

// WithRequireReproducible requires every process-receipt step to be marked
// reproducible (subject.processProvenance.reproducibleSteps ==
// subject.processProvenance.attestedSteps... actually reproducibleSteps ==
// total steps, enforced by Evaluate against ReceiptCount).
func WithRequireReproducible() Option {
	return func(e *Evaluator) { e.requireReproducible = true }
}

// WithMaxAge rejects credentials issued more than d before the evaluation
// time, independent of the JWT's own exp claim.
func WithMaxAge(d time.Duration) Option {
	return func(e *Evaluator) { e.maxAge = d }
}

// New builds an Evaluator from opts.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input is everything Evaluate needs about one verified CPOE.
type Input struct {
	IssuerDID     string
	Subject       cpoe.Subject
	IssuedAt      time.Time
	Now           time.Time
	ChainVerified bool
}

// Result is Evaluate's outcome: Allowed is true only when every configured
// predicate passed; Violations names every predicate that failed.
type Result struct {
	Allowed    bool
	Violations []string
}

// Evaluate checks in against every configured predicate.
func (e *Evaluator) Evaluate(in Input) Result {
	var violations []string

	if e.allowedIssuer != "" && in.IssuerDID != e.allowedIssuer {
		violations = append(violations, fmt.Sprintf("issuer %q is not the allowed issuer %q", in.IssuerDID, e.allowedIssuer))
	}
	if e.minScore > 0 && in.Subject.Summary.OverallScore < e.minScore {
		violations = append(violations, fmt.Sprintf("overallScore %d is below required minimum %d", in.Subject.Summary.OverallScore, e.minScore))
	}
	for _, fw := range e.requiredFrameworks {
		if _, ok := in.Subject.Frameworks[fw]; !ok {
			violations = append(violations, fmt.Sprintf("required framework %q is absent", fw))
		}
	}
	if e.requireChainVerified && !in.ChainVerified {
		violations = append(violations, "process receipt chain did not verify")
	}
	if e.requireReproducible && in.Subject.ProcessProvenance != nil {
		pp := in.Subject.ProcessProvenance
		if pp.ReproducibleSteps != pp.ReceiptCount {
			violations = append(violations, "not every process step is reproducible")
		}
	}
	if e.maxAge > 0 && in.Now.Sub(in.IssuedAt) > e.maxAge {
		violations = append(violations, fmt.Sprintf("credential age %s exceeds maximum %s", in.Now.Sub(in.IssuedAt), e.maxAge))
	}

	return Result{Allowed: len(violations) == 0, Violations: violations}
}
