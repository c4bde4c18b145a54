// Package keystore owns the Ed25519 keypair lifecycle for the trust core:
// generation, encryption at rest, rotation, and retirement.
//
// Exactly one keypair is active at any time; retired keypairs remain
// available forever so that Verifier can still validate CPOEs signed before
// a rotation (P3). Private key material is decrypted into memory only for
// the duration of a sign operation and is never returned to callers in
// plaintext by any exported accessor other than the signer adapter in this
// package.
//
// Reads (Active, Retired) take a lock-free snapshot of the current state;
// mutations (Generate, Rotate) serialize under an exclusive write lock, per
// §5 of the specification.
package keystore
