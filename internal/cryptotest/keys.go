package cryptotest

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/keystore"
	"github.com/grcorsair/trustcore/signer"
)

// TestSecret is a fixed, valid 64-hex-character encryption secret for use
// across tests; it carries no meaning beyond being the right shape.
const TestSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"

// NewTestKeystore builds a KeyStore with a single generated active key,
// backed by an in-memory persister.
func NewTestKeystore(t *testing.T) *keystore.KeyStore {
	t.Helper()
	ks, err := keystore.New(context.Background(), TestSecret, nil, logger.Sugar.WithServiceName("cryptotest"))
	require.NoError(t, err)
	_, err = ks.Generate(context.Background())
	require.NoError(t, err)
	return ks
}

// TestSignerKey returns ks's active keypair adapted to a signer.Key, along
// with the keypair itself for building TrustedKey/ResolvedKey fixtures.
func TestSignerKey(t *testing.T, ks *keystore.KeyStore) (signer.Key, *keystore.Keypair) {
	t.Helper()
	kp, err := ks.MustActive()
	require.NoError(t, err)
	return signer.FromKeypair(kp), kp
}

// TestTrustedKeys adapts every key in ks's trusted set to signer.TrustedKey.
func TestTrustedKeys(ks *keystore.KeyStore) []signer.TrustedKey {
	trusted := ks.TrustedSet()
	out := make([]signer.TrustedKey, len(trusted))
	for i, kp := range trusted {
		out[i] = signer.TrustedKey{KeyFragment: kp.KeyID, Public: kp.Public}
	}
	return out
}
