package signer_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/grcorsair/trustcore/keystore"
)

// testKeypair builds a bare keystore.Keypair for signing tests without
// going through a KeyStore, the same "construct the fixture directly"
// convention used by massifs' test signer contexts.
func testKeypair(t *testing.T, keyID string) *keystore.Keypair {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating test keypair: %v", err)
	}
	return &keystore.Keypair{
		KeyID:     keyID,
		Public:    pub,
		Private:   priv,
		CreatedAt: time.Now().UTC(),
		Status:    keystore.StatusActive,
	}
}
