// Package signer produces and verifies CPOE JWT-VCs (§4.5): three-segment
// JWTs with header {alg:"EdDSA", typ:"vc+jwt", kid:"<issuerDID>#<key-id>"},
// signed over base64url(header).base64url(payload) with an Ed25519 private
// key.
//
// Signing input is always canon.MarshalStruct's canonical form of the
// payload struct, never encoding/json's own (non-deterministic field order
// for maps) output, so a JWT produced here and a JWT produced by any other
// implementation of this specification sign and verify identical bytes.
//
// This generalizes massifs.RootSigner's Sign1(coseSigner, keyIdentifier,
// publicKey, subject, state) shape from COSE/CBOR/ECDSA to JWS/JSON/Ed25519.
package signer
