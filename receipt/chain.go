package receipt

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grcorsair/trustcore/canon"
	"github.com/grcorsair/trustcore/signer"
)

// genesisPrevHash is the fixed prevHash of a chain's first receipt: 32 zero
// bytes, hex-encoded.
var genesisPrevHash = strings.Repeat("00", 32)

// Chain accumulates a single generating pipeline's signed receipts. Appends
// are serialized under a mutex; the spec leaves concurrent-writer ordering
// undefined and assumes one writer per chain, so this lock exists only to
// protect the in-process slice, not to arbitrate step ordering.
type Chain struct {
	mu       sync.Mutex
	receipts []SignedReceipt
}

// NewChain returns an empty receipt chain.
func NewChain() *Chain {
	return &Chain{}
}

// Append builds and signs the next receipt: inputHash and outputHash are
// H(canon(input)) and H(canon(output)); prevHash links to the previous
// receipt's own canonical hash, or genesisPrevHash for the first.
func (c *Chain) Append(key signer.Key, step string, input, output any, reproducible bool, attestation *string) (*SignedReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inputHash, err := canon.HashStruct(input)
	if err != nil {
		return nil, fmt.Errorf("receipt: hashing input: %w", err)
	}
	outputHash, err := canon.HashStruct(output)
	if err != nil {
		return nil, fmt.Errorf("receipt: hashing output: %w", err)
	}

	prevHash := genesisPrevHash
	if n := len(c.receipts); n > 0 {
		prevHash, err = canon.HashStruct(c.receipts[n-1].Receipt)
		if err != nil {
			return nil, fmt.Errorf("receipt: hashing previous receipt: %w", err)
		}
	}

	r := Receipt{
		Step:         step,
		InputHash:    inputHash,
		OutputHash:   outputHash,
		Timestamp:    time.Now().UTC().Unix(),
		PrevHash:     prevHash,
		Reproducible: reproducible,
		Attestation:  attestation,
	}

	canonical, err := canon.MarshalStruct(r)
	if err != nil {
		return nil, fmt.Errorf("receipt: canonicalizing receipt: %w", err)
	}
	sig, err := key.Sign(canonical)
	if err != nil {
		return nil, fmt.Errorf("receipt: signing receipt: %w", err)
	}

	sr := SignedReceipt{
		Receipt:   r,
		KeyID:     key.KeyID(),
		Signature: base64.RawURLEncoding.EncodeToString(sig),
	}
	c.receipts = append(c.receipts, sr)
	return &sr, nil
}

// Receipts returns a snapshot of every receipt appended so far, in order.
func (c *Chain) Receipts() []SignedReceipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SignedReceipt, len(c.receipts))
	copy(out, c.receipts)
	return out
}

// ChainDigest folds c's current receipts the same way the package-level
// ChainDigest function does.
func (c *Chain) ChainDigest() (string, error) {
	return ChainDigest(c.Receipts())
}

// ChainDigest computes H(concat(H(canon(r0)) .. H(canon(rn)))) in hex, over
// an arbitrary receipt slice (not necessarily a live Chain's own state), so
// a verifier can recompute it purely from receipts supplied out-of-band.
func ChainDigest(receipts []SignedReceipt) (string, error) {
	var concat []byte
	for i := range receipts {
		h, err := canon.HashStruct(receipts[i].Receipt)
		if err != nil {
			return "", fmt.Errorf("receipt: hashing receipt %d: %w", i, err)
		}
		raw, err := hex.DecodeString(h)
		if err != nil {
			return "", fmt.Errorf("receipt: decoding digest %d: %w", i, err)
		}
		concat = append(concat, raw...)
	}
	return canon.HashBytes(concat), nil
}
