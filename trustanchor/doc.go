// Package trustanchor builds the two documents an external HTTP
// collaborator serves on the core's behalf (§6 "Trust anchors ... produced
// by core"): a did:web DID document and a JWKS, both derived from a
// keystore.KeyStore's current active and retired keys.
package trustanchor
