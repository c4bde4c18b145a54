package translog

import (
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/grcorsair/trustcore/canon"
)

// Log is the append-only, in-memory transparency log. Appends take an
// exclusive lock; reads (getReceipt, listEntries, getIssuerProfile) take a
// snapshot under a read lock so verification is never blocked behind a
// registration in flight (§5).
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	log     logger.Logger
}

// NewLog constructs an empty transparency log.
func NewLog(log logger.Logger) *Log {
	if log == nil {
		log = logger.Sugar.WithServiceName("translog")
	}
	return &Log{log: log}
}

// Register validates and appends statement under the next monotonic
// entryId. With proofOnly, the statement bytes are discarded immediately
// after its digest is computed.
func (l *Log) Register(statement []byte, proofOnly bool) (*Entry, error) {
	if len(statement) > maxStatementBytes {
		return nil, ErrStatementTooLarge
	}
	issuer, framework, err := parseStatement(statement)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		EntryID:         uint64(len(l.entries)),
		StatementDigest: canon.HashBytes(statement),
		RegisteredAt:    time.Now().UTC(),
		Issuer:          issuer,
		Framework:       framework,
		ProofOnly:       proofOnly,
	}
	if !proofOnly {
		entry.Statement = append([]byte{}, statement...)
	}
	l.entries = append(l.entries, entry)
	l.log.Infof("translog: registered entry %d (issuer=%q proofOnly=%v)", entry.EntryID, issuer, proofOnly)
	return &entry, nil
}

// currentTree rebuilds the Merkle tree over every entry registered so far.
// Caller must hold at least a read lock.
func (l *Log) currentTree() (*merkleTree, error) {
	leaves := make([][]byte, len(l.entries))
	for i, e := range l.entries {
		h, err := leafHash(e.StatementDigest, e.EntryID)
		if err != nil {
			return nil, fmt.Errorf("translog: hashing leaf %d: %w", e.EntryID, err)
		}
		leaves[i] = h
	}
	return buildMerkleTree(leaves), nil
}

// GetReceipt returns the inclusion proof for entryId against the tree as it
// stands right now. Per P6, registering further entries never changes the
// proof or root for a snapshot a verifier already holds.
func (l *Log) GetReceipt(entryID uint64) (*InclusionProof, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil, ErrEmptyLog
	}
	if entryID >= uint64(len(l.entries)) {
		return nil, ErrEntryNotFound
	}

	tree, err := l.currentTree()
	if err != nil {
		return nil, err
	}
	leafBytes, err := leafHash(l.entries[entryID].StatementDigest, entryID)
	if err != nil {
		return nil, err
	}

	return &InclusionProof{
		EntryID:  entryID,
		LeafHash: hex.EncodeToString(leafBytes),
		Root:     hex.EncodeToString(tree.root()),
		TreeSize: len(l.entries),
		Path:     tree.proofPath(int(entryID)),
	}, nil
}

// ListEntries returns a paginated, filtered projection over registered
// entries in entryId order.
func (l *Log) ListEntries(filter ListFilter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 100 {
		return nil, ErrInvalidPageSize
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []Entry
	for _, e := range l.entries {
		if filter.Issuer != "" && e.Issuer != filter.Issuer {
			continue
		}
		if filter.Framework != "" && e.Framework != filter.Framework {
			continue
		}
		matched = append(matched, e)
	}

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]Entry, end-filter.Offset)
	copy(out, matched[filter.Offset:end])
	return out, nil
}

// GetIssuerProfile aggregates the count and latest entry for did.
func (l *Log) GetIssuerProfile(did string) (*IssuerProfile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	profile := &IssuerProfile{DID: did}
	found := false
	for _, e := range l.entries {
		if e.Issuer != did {
			continue
		}
		profile.Count++
		if !found || e.RegisteredAt.After(profile.LatestRegistered) {
			profile.LatestEntryID = e.EntryID
			profile.LatestRegistered = e.RegisteredAt
		}
		found = true
	}
	if !found {
		return nil, ErrEntryNotFound
	}
	return profile, nil
}

// Len returns the current number of registered entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
