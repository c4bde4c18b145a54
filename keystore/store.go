package keystore

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
)

// ErrActiveKeyExists is returned by Generate when an active key already
// exists; callers wanting a new active key over an existing one must call
// Rotate, which retires the current key atomically.
var ErrActiveKeyExists = errors.New("keystore: an active key already exists, use Rotate")

// KeyStore owns the one-active-plus-N-retired Ed25519 keypair set for a
// deployment. Reads take lock-free snapshots; Generate and Rotate serialize
// under mu, guaranteeing concurrent signers observe either the old or the
// new active key atomically (§5).
type KeyStore struct {
	mu        sync.RWMutex
	secret    secret
	persister Persister
	log       logger.Logger

	active  *Keypair
	retired []*Keypair
	seq     int
}

// New constructs a KeyStore from a 64-hex-character encryption secret and a
// Persister, loading and decrypting any previously persisted keypairs.
// ConfigError-classed failures (ErrConfigInvalid) are returned immediately
// if the secret is absent or the wrong length, per §4.1.
func New(ctx context.Context, hexSecret string, persister Persister, log logger.Logger) (*KeyStore, error) {
	s, err := parseSecret(hexSecret)
	if err != nil {
		return nil, err
	}
	if persister == nil {
		persister = NewMemoryPersister()
	}
	if log == nil {
		log = logger.Sugar.WithServiceName("keystore")
	}

	ks := &KeyStore{secret: s, persister: persister, log: log}
	if err := ks.reload(ctx); err != nil {
		return nil, err
	}
	return ks, nil
}

func (ks *KeyStore) reload(ctx context.Context) error {
	records, err := ks.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("keystore: loading persisted keys: %w", err)
	}
	for _, rec := range records {
		kp, err := ks.decrypt(rec)
		if err != nil {
			return err
		}
		if kp.Status == StatusActive {
			ks.active = kp
		} else {
			ks.retired = append(ks.retired, kp)
		}
		if n, ok := keyIDSequence(kp.KeyID); ok && n > ks.seq {
			ks.seq = n
		}
	}
	return nil
}

func (ks *KeyStore) decrypt(rec EncryptedKeypair) (*Keypair, error) {
	pub, err := decodePublicKeyPEM(rec.PublicKeyPEM)
	if err != nil {
		return nil, err
	}
	priv, err := ks.secret.open(rec.Nonce, rec.Ciphertext)
	if err != nil {
		return nil, err
	}
	return &Keypair{
		KeyID:     rec.KeyID,
		Public:    pub,
		Private:   priv,
		CreatedAt: rec.CreatedAt,
		Status:    rec.Status,
		RetiredAt: rec.RetiredAt,
	}, nil
}

func (ks *KeyStore) encrypt(kp *Keypair) (EncryptedKeypair, error) {
	pubPEM, err := encodePublicKeyPEM(kp.Public)
	if err != nil {
		return EncryptedKeypair{}, err
	}
	nonce, ciphertext, err := ks.secret.seal(kp.Private)
	if err != nil {
		return EncryptedKeypair{}, err
	}
	return EncryptedKeypair{
		KeyID:        kp.KeyID,
		PublicKeyPEM: pubPEM,
		Nonce:        nonce,
		Ciphertext:   ciphertext,
		CreatedAt:    kp.CreatedAt,
		Status:       kp.Status,
		RetiredAt:    kp.RetiredAt,
	}, nil
}

func generateKeypair(keyID string, now time.Time) (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keystore: generating ed25519 keypair: %w", err)
	}
	return &Keypair{
		KeyID:     keyID,
		Public:    pub,
		Private:   priv,
		CreatedAt: now,
		Status:    StatusActive,
	}, nil
}

// Generate creates the store's first active keypair. It fails with
// ErrActiveKeyExists if one is already present; use Rotate to replace an
// existing active key.
func (ks *KeyStore) Generate(ctx context.Context) (*Keypair, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.active != nil {
		return nil, ErrActiveKeyExists
	}

	ks.seq++
	kp, err := generateKeypair(fmt.Sprintf("key-%d", ks.seq), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	ks.active = kp
	if err := ks.persistLocked(ctx); err != nil {
		ks.active = nil
		return nil, err
	}
	ks.log.Infof("keystore: generated active key %s", kp.KeyID)
	return cloneKeypair(kp), nil
}

// Rotate generates a new active keypair and retires the prior one,
// stamping its RetiredAt. At most one rotation is ever in flight because
// the whole operation executes under the write lock; concurrent signers
// continue observing the old active key until Rotate returns, and the new
// key atomically thereafter.
func (ks *KeyStore) Rotate(ctx context.Context) (newActive *Keypair, retiredPrev *Keypair, err error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	prevActive := ks.active
	now := time.Now().UTC()

	ks.seq++
	next, err := generateKeypair(fmt.Sprintf("key-%d", ks.seq), now)
	if err != nil {
		return nil, nil, err
	}

	if prevActive != nil {
		retiredAt := now
		prevActive.Status = StatusRetired
		prevActive.RetiredAt = &retiredAt
		ks.retired = append(ks.retired, prevActive)
	}
	ks.active = next

	if err := ks.persistLocked(ctx); err != nil {
		return nil, nil, err
	}
	ks.log.Infof("keystore: rotated active key to %s", next.KeyID)
	return cloneKeypair(next), clonedOrNil(prevActive), nil
}

func (ks *KeyStore) persistLocked(ctx context.Context) error {
	records := make([]EncryptedKeypair, 0, 1+len(ks.retired))
	if ks.active != nil {
		rec, err := ks.encrypt(ks.active)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	for _, kp := range ks.retired {
		rec, err := ks.encrypt(kp)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := ks.persister.Save(ctx, records); err != nil {
		return fmt.Errorf("keystore: persisting keys: %w", err)
	}
	return nil
}

// Active returns the current active keypair, or ok=false if none has been
// generated yet. It is a lock-free snapshot read.
func (ks *KeyStore) Active() (kp *Keypair, ok bool) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if ks.active == nil {
		return nil, false
	}
	return cloneKeypair(ks.active), true
}

// MustActive is Active but returns ErrKeyMissing instead of ok=false, for
// callers (Signer) that require an active key to proceed.
func (ks *KeyStore) MustActive() (*Keypair, error) {
	kp, ok := ks.Active()
	if !ok {
		return nil, ErrKeyMissing
	}
	return kp, nil
}

// Retired returns a snapshot of every retired keypair, oldest first.
func (ks *KeyStore) Retired() []*Keypair {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	out := make([]*Keypair, len(ks.retired))
	for i, kp := range ks.retired {
		out[i] = cloneKeypair(kp)
	}
	return out
}

// TrustedSet returns every key (active and retired) this store knows
// about, the trusted-key fallback set referenced by §4.8.
func (ks *KeyStore) TrustedSet() []*Keypair {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	out := make([]*Keypair, 0, len(ks.retired)+1)
	if ks.active != nil {
		out = append(out, cloneKeypair(ks.active))
	}
	for _, kp := range ks.retired {
		out = append(out, cloneKeypair(kp))
	}
	return out
}

// ByKeyID looks up any key (active or retired) by its identifier.
func (ks *KeyStore) ByKeyID(keyID string) (*Keypair, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if ks.active != nil && ks.active.KeyID == keyID {
		return cloneKeypair(ks.active), nil
	}
	for _, kp := range ks.retired {
		if kp.KeyID == keyID {
			return cloneKeypair(kp), nil
		}
	}
	return nil, ErrUnknownKeyID
}

// keyIDSequence extracts the trailing numeric sequence from a "key-N"
// identifier, so reload() can resume numbering after a restart without
// ever reusing or skipping a prior sequence value.
func keyIDSequence(keyID string) (int, bool) {
	const prefix = "key-"
	if !strings.HasPrefix(keyID, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(keyID, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

func cloneKeypair(kp *Keypair) *Keypair {
	if kp == nil {
		return nil
	}
	clone := *kp
	return &clone
}

func clonedOrNil(kp *Keypair) *Keypair {
	if kp == nil {
		return nil
	}
	return cloneKeypair(kp)
}
