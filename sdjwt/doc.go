// Package sdjwt implements selective disclosure over a CPOE JWT-VC (§4.6):
// Issue replaces chosen credentialSubject fields with sha-256 digests before
// signing and emits a matching set of disclosures; Present filters that set
// down to a holder's chosen subset without touching the JWT bytes; Verify
// checks the JWT and recomputes each presented disclosure's digest against
// the signed `_sd` claim.
//
// Wire format is `<jwt>~<disclosure>~..~<disclosure>~`, a trailing `~`
// always present even with zero disclosures.
package sdjwt
