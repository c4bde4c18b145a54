package translog

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// CheckpointPayload is the CBOR body of a signed checkpoint: a commitment
// to the log's current root and size at a point in time, the same role the
// teacher's MMRState plays for an MMR-backed log, generalized to this
// package's classic binary tree.
type CheckpointPayload struct {
	Root      []byte `cbor:"1,keyasint"`
	TreeSize  uint64 `cbor:"2,keyasint"`
	Timestamp int64  `cbor:"3,keyasint"`
}

// SignCheckpoint builds a CheckpointPayload for the log's current state and
// wraps it in a COSE_Sign1 message signed with priv under keyID.
func (l *Log) SignCheckpoint(keyID string, priv ed25519.PrivateKey) ([]byte, error) {
	l.mu.RLock()
	tree, err := l.currentTree()
	size := len(l.entries)
	l.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, ErrEmptyLog
	}

	payload := CheckpointPayload{
		Root:      tree.root(),
		TreeSize:  uint64(size),
		Timestamp: time.Now().UTC().UnixMilli(),
	}
	payloadBytes, err := cbor.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("translog: encoding checkpoint payload: %w", err)
	}

	signer, err := cose.NewSigner(cose.AlgorithmEdDSA, priv)
	if err != nil {
		return nil, fmt.Errorf("translog: constructing cose signer: %w", err)
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: cose.AlgorithmEdDSA,
				cose.HeaderLabelKeyID:     []byte(keyID),
			},
			Unprotected: cose.UnprotectedHeader{},
		},
		Payload: payloadBytes,
	}
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("translog: signing checkpoint: %w", err)
	}

	return msg.MarshalCBOR()
}

// VerifyCheckpoint decodes a COSE_Sign1 checkpoint, verifies its signature
// against pub, and returns the decoded payload.
func VerifyCheckpoint(data []byte, pub ed25519.PublicKey) (*CheckpointPayload, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointInvalid, err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmEdDSA, pub)
	if err != nil {
		return nil, fmt.Errorf("translog: constructing cose verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointInvalid, err)
	}

	var payload CheckpointPayload
	if err := cbor.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrCheckpointInvalid, err)
	}
	return &payload, nil
}
