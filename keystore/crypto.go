package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
)

const (
	secretHexLen = 64 // 32 bytes, hex-encoded
	nonceSize    = 12 // AES-GCM standard nonce size
)

// secret is the deployment-wide 32-byte AES-256-GCM key, parsed once from
// its 64-character hex configuration form.
type secret [32]byte

func parseSecret(hexSecret string) (secret, error) {
	var s secret
	if len(hexSecret) != secretHexLen {
		return s, ErrConfigInvalid
	}
	raw, err := hex.DecodeString(hexSecret)
	if err != nil || len(raw) != 32 {
		return s, ErrConfigInvalid
	}
	copy(s[:], raw)
	return s, nil
}

func (s secret) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s[:])
	if err != nil {
		return nil, fmt.Errorf("keystore: building aes cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// seal encrypts priv under s with a fresh random nonce.
func (s secret) seal(priv ed25519.PrivateKey) (nonce [nonceSize]byte, ciphertext []byte, err error) {
	gcm, err := s.aead()
	if err != nil {
		return nonce, nil, err
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, nil, fmt.Errorf("keystore: generating nonce: %w", err)
	}
	ciphertext = gcm.Seal(nil, nonce[:], priv, nil)
	return nonce, ciphertext, nil
}

// open decrypts ciphertext sealed by seal, returning ErrKeyDecryptFailed on
// any authentication tag mismatch.
func (s secret) open(nonce [nonceSize]byte, ciphertext []byte) (ed25519.PrivateKey, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, ErrKeyDecryptFailed
	}
	return ed25519.PrivateKey(plaintext), nil
}

// encodePublicKeyPEM renders pub as a PEM-encoded SPKI block, the format
// required by §4.1.
func encodePublicKeyPEM(pub ed25519.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("keystore: marshaling spki: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return pem.EncodeToMemory(block), nil
}

// decodePublicKeyPEM parses a PEM/SPKI block back into an Ed25519 public
// key, returning ErrKeyFormatInvalid on any malformed input.
func decodePublicKeyPEM(raw []byte) (ed25519.PublicKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, ErrKeyFormatInvalid
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, ErrKeyFormatInvalid
	}
	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, ErrKeyFormatInvalid
	}
	return edPub, nil
}
