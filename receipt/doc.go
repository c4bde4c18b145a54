// Package receipt implements the process-receipt chain of §4.7: a
// hash-linked, per-step signed record of a CPOE's generating pipeline.
// Append produces one signed receipt per step; ChainDigest folds the whole
// chain into the single hex digest a CPOE's processProvenance claims;
// VerifyChain recomputes both the links and the digest independently of
// trusting any prior claim.
package receipt
