// Package verifier composes signer, didweb, keystore, sdjwt, receipt, and
// policy into the single decision flow of §4.8: split any SD-JWT
// disclosures, attempt DID-based verification, fall back to the trusted
// key set, then run the optional sub-checks (policy, receipt chain,
// input-binding).
//
// Verifier holds its collaborators as concrete fields assigned once at
// construction rather than looking them up through a runtime registry,
// following massifs/massifcontextverified.go's pattern of a verified-reader
// type that wraps a plain reader and layers signature/consistency checks on
// top of it.
package verifier
