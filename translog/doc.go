// Package translog implements the append-only transparency log of §4.9:
// statements are registered under a monotonic entryId, a classic binary
// Merkle tree (not a Merkle Mountain Range) provides inclusion proofs with
// the odd-rightmost-node duplicated, and the current root is periodically
// published as a COSE-signed checkpoint.
//
// The tree-construction rule in §4.9 is authoritative over this module's
// own COSE/MMR heritage: a Merkle Mountain Range optimizes for a
// continuously-appended, never-fully-rebuilt log at very large scale, but
// this log's proofs must match the specified leaf/node hashing exactly, so
// the tree here is rebuilt from entries rather than grown incrementally.
package translog
