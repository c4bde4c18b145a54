package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashStruct canonicalizes v and returns the hex-encoded sha-256 digest of
// the canonical bytes. It is the H(canon(...)) building block referenced
// throughout §4 of the specification (receipt input/output hashes, chain
// digest links, transparency-log statement digests).
func HashStruct(v any) (string, error) {
	raw, err := MarshalStruct(v)
	if err != nil {
		return "", err
	}
	return HashBytes(raw), nil
}

// HashBytes returns the hex-encoded sha-256 digest of raw directly, for
// callers that already hold canonical (or otherwise fixed) bytes, such as
// a raw JWT-VC being registered with the transparency log.
func HashBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// HashBytesRaw returns the raw sha-256 digest bytes rather than the
// hex-encoded form, for callers building binary structures (Merkle tree
// nodes, receipt prevHash links).
func HashBytesRaw(raw []byte) []byte {
	sum := sha256.Sum256(raw)
	return sum[:]
}
