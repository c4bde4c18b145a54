package translog

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"

	"github.com/grcorsair/trustcore/canon"
)

// leafHash computes H(statementDigest || entryId) as required by §4.9: the
// statement digest's raw bytes concatenated with the entry id as an 8-byte
// big-endian integer.
func leafHash(statementDigestHex string, entryID uint64) ([]byte, error) {
	digest, err := hex.DecodeString(statementDigestHex)
	if err != nil {
		return nil, err
	}
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], entryID)
	return canon.HashBytesRaw(append(append([]byte{}, digest...), idBytes[:]...)), nil
}

func nodeHash(left, right []byte) []byte {
	return canon.HashBytesRaw(append(append([]byte{}, left...), right...))
}

// merkleTree holds every level of a binary tree built over a fixed set of
// leaves, levels[0] being the leaves and the last level its single-element
// root. An odd level duplicates its rightmost node when pairing for the
// level above, per §4.9.
type merkleTree struct {
	levels [][][]byte
}

func buildMerkleTree(leaves [][]byte) *merkleTree {
	if len(leaves) == 0 {
		return &merkleTree{}
	}
	levels := [][][]byte{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([][]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			left := current[i]
			right := left
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, nodeHash(left, right))
		}
		levels = append(levels, next)
		current = next
	}
	return &merkleTree{levels: levels}
}

func (t *merkleTree) root() []byte {
	if len(t.levels) == 0 {
		return nil
	}
	last := t.levels[len(t.levels)-1]
	return last[0]
}

// proofPath returns the sibling hash at each level from leaf index down to
// (but excluding) the root, base64url-encoded.
func (t *merkleTree) proofPath(index int) []string {
	var path []string
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		var siblingIdx int
		if idx%2 == 0 {
			siblingIdx = idx + 1
			if siblingIdx >= len(nodes) {
				siblingIdx = idx // odd rightmost node is its own duplicate
			}
		} else {
			siblingIdx = idx - 1
		}
		path = append(path, base64.RawURLEncoding.EncodeToString(nodes[siblingIdx]))
		idx /= 2
	}
	return path
}
