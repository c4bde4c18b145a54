package keystore

import "context"

// Persister is the storage boundary KeyStore mutates through. Persistence
// SQL/object-store wiring is an external collaborator's concern per §1
// scope; KeyStore only needs the two operations below, split the way
// massifs.MassifReader/MassifCommitter split read and append paths.
type Persister interface {
	// Load returns every encrypted keypair record currently persisted, in
	// no particular order.
	Load(ctx context.Context) ([]EncryptedKeypair, error)

	// Save persists the full current set of encrypted keypair records,
	// replacing whatever was previously stored. KeyStore calls this while
	// holding its write lock, so implementations do not need to provide
	// their own serialization beyond whatever the backing store requires
	// for a single writer.
	Save(ctx context.Context, records []EncryptedKeypair) error
}

// MemoryPersister is an in-process Persister backed by a slice, suitable
// for tests and for deployments that reconstruct key material from an
// external secret manager on every process start rather than persisting
// ciphertext locally.
type MemoryPersister struct {
	records []EncryptedKeypair
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(_ context.Context) ([]EncryptedKeypair, error) {
	out := make([]EncryptedKeypair, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryPersister) Save(_ context.Context, records []EncryptedKeypair) error {
	m.records = append([]EncryptedKeypair(nil), records...)
	return nil
}
