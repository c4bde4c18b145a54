// Package didweb resolves did:web identifiers to the Ed25519 verification
// key published in the controller's DID document, per §4.3.
//
// A did:web:<domain>[:<path>...] identifier is normalized by replacing ":"
// with "/" after the method and appending "/.well-known/did.json" (no
// path) or "/did.json" (with path), then fetched over HTTPS with zero
// redirects and a bounded timeout. Every candidate address is checked
// against the SSRF guard (P7) before a connection is made, rejecting
// private, loopback, link-local, and unique-local ranges for both IPv4 and
// IPv6.
package didweb
