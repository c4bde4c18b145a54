// Package canon implements the canonical JSON serialization used as the
// signing pre-image for every signature produced by this module: CPOE
// JWT-VCs, process receipts, and transparency-log checkpoints.
//
// # Rules
//
// The rule set is authoritative and deliberately narrower than any general
// purpose "canonical JSON" library:
//
//   - object keys are sorted lexicographically (byte-wise) at every depth
//   - no insignificant whitespace
//   - integers are emitted in their shortest decimal form
//   - floating point numbers are rejected outright (Marshal returns
//     ErrFloatNotAllowed); signed payloads in this system are integers,
//     strings, bools, objects and arrays only
//
// Any deviation in whitespace or escaping silently breaks cross
// implementation verification, so this package intentionally does not
// delegate to encoding/json's own map-key ordering (which is already
// lexicographic for map[string]any, but is not a rule this package is
// willing to depend on remaining true of an upstream library going
// forward) or to any third-party canonicalization library.
package canon
