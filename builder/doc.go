// Package builder implements CPOEBuilder (§4.4): normalizing external
// evidence into the fixed cpoe.Subject schema, classifying its provenance
// source, computing the pass/fail summary, and wrapping the result in a
// W3C Verifiable Credential envelope. Builder never signs; its output is
// handed to signer.Sign (optionally via sdjwt.Issue first).
package builder
