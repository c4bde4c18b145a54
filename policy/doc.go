// Package policy evaluates a verified CPOE against deployment-configured
// presets (§6 "allowedIssuer ... for policy presets"): minimum score,
// required frameworks, issuer allow-listing, maximum age, and whether a
// process-receipt chain must have verified. Predicates are assembled once
// at construction via functional options, the same pattern massifs uses for
// ReaderOptions, and Evaluate never mutates the Evaluator afterward.
package policy
