package keystore

import (
	"crypto/ed25519"
	"time"
)

// Status is the lifecycle state of a keypair. Exactly one keypair is
// Active at a time; every prior active key becomes Retired and is never
// promoted back.
type Status string

const (
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
)

// Keypair is an Ed25519 signing keypair tracked by the store. Private is
// populated only transiently while the key is unwrapped for signing; the
// durable record (see EncryptedKeypair) never carries plaintext.
type Keypair struct {
	KeyID     string
	Public    ed25519.PublicKey
	Private   ed25519.PrivateKey
	CreatedAt time.Time
	Status    Status
	RetiredAt *time.Time
}

// EncryptedKeypair is the at-rest representation persisted through a
// Persister: the public key in the clear (SPKI/PEM) and the private key
// sealed under AES-256-GCM.
type EncryptedKeypair struct {
	KeyID          string
	PublicKeyPEM   []byte
	Nonce          [nonceSize]byte
	Ciphertext     []byte
	CreatedAt      time.Time
	Status         Status
	RetiredAt      *time.Time
}
