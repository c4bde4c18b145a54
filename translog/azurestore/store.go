package azurestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/grcorsair/trustcore/translog"
)

const entryPrefix = "translog/entries/"

// blobStore is the subset of go-datatrails-common/azblob's client this
// package depends on, the same reader/writer split massifs.MassifCommitter
// and its logBlobReader interface use.
type blobStore interface {
	Put(ctx context.Context, identity string, reader io.ReadCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
	Reader(ctx context.Context, identity string, opts ...azblob.Option) (*azblob.ReaderResponse, error)
	List(ctx context.Context, opts ...azblob.Option) (*azblob.ListerResponse, error)
}

// entryRecord is the JSON-serialized form of a translog.Entry persisted to
// blob storage, one blob per entry.
type entryRecord struct {
	EntryID         uint64 `json:"entryId"`
	StatementDigest string `json:"statementDigest"`
	RegisteredAt    int64  `json:"registeredAt"`
	Issuer          string `json:"issuer"`
	Framework       string `json:"framework"`
	Statement       []byte `json:"statement,omitempty"`
	ProofOnly       bool   `json:"proofOnly"`
}

// Store durably persists translog entries to Azure Blob Storage, one blob
// per entryId, so a restarted process can rebuild an in-memory translog.Log
// from Load's results via repeated Register calls.
type Store struct {
	store blobStore
	log   logger.Logger
}

// New constructs a Store over an already-configured azblob client.
func New(store blobStore, log logger.Logger) *Store {
	if log == nil {
		log = logger.Sugar.WithServiceName("translog-azurestore")
	}
	return &Store{store: store, log: log}
}

func blobPath(entryID uint64) string {
	return fmt.Sprintf("%s%020d", entryPrefix, entryID)
}

// SaveEntry persists a single entry, overwriting any prior blob at the same
// entryId (entries are immutable once appended, so this is only ever a
// first write in practice).
func (s *Store) SaveEntry(ctx context.Context, entry translog.Entry) error {
	rec := entryRecord{
		EntryID:         entry.EntryID,
		StatementDigest: entry.StatementDigest,
		RegisteredAt:    entry.RegisteredAt.UnixMilli(),
		Issuer:          entry.Issuer,
		Framework:       entry.Framework,
		Statement:       entry.Statement,
		ProofOnly:       entry.ProofOnly,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("azurestore: encoding entry %d: %w", entry.EntryID, err)
	}

	_, err = s.store.Put(ctx, blobPath(entry.EntryID), azblob.NewBytesReaderCloser(data))
	if err != nil {
		return fmt.Errorf("azurestore: writing entry %d: %w", entry.EntryID, err)
	}
	s.log.Debugf("azurestore: persisted entry %d", entry.EntryID)
	return nil
}

// Load lists and reads back every persisted entry, ordered by entryId, for
// replaying into a fresh translog.Log at process start.
func (s *Store) Load(ctx context.Context) ([]translog.Entry, error) {
	listing, err := s.store.List(ctx, azblob.WithListPrefix(entryPrefix))
	if err != nil {
		return nil, fmt.Errorf("azurestore: listing entries: %w", err)
	}

	entries := make([]translog.Entry, 0, len(listing.Items))
	for _, item := range listing.Items {
		rr, err := s.store.Reader(ctx, item.Identity)
		if err != nil {
			return nil, fmt.Errorf("azurestore: reading %s: %w", item.Identity, err)
		}
		raw, err := io.ReadAll(rr.Body)
		if err != nil {
			return nil, fmt.Errorf("azurestore: draining %s: %w", item.Identity, err)
		}

		var rec entryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("azurestore: decoding %s: %w", item.Identity, err)
		}
		pathID, err := entryIDFromBlobPath(item.Identity)
		if err != nil {
			return nil, err
		}
		if pathID != rec.EntryID {
			return nil, fmt.Errorf("azurestore: blob %s contains entry %d, entryId mismatch", item.Identity, rec.EntryID)
		}
		entries = append(entries, translog.Entry{
			EntryID:         rec.EntryID,
			StatementDigest: rec.StatementDigest,
			RegisteredAt:    time.UnixMilli(rec.RegisteredAt).UTC(),
			Issuer:          rec.Issuer,
			Framework:       rec.Framework,
			Statement:       rec.Statement,
			ProofOnly:       rec.ProofOnly,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryID < entries[j].EntryID })
	return entries, nil
}

// entryIDFromBlobPath recovers the numeric entryId encoded in a blob path
// produced by blobPath, for callers that only have the path string.
func entryIDFromBlobPath(path string) (uint64, error) {
	trimmed := strings.TrimPrefix(path, entryPrefix)
	n, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("azurestore: malformed blob path %q: %w", path, err)
	}
	return n, nil
}
