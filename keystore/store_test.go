package keystore_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/grcorsair/trustcore/keystore"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"

func init() {
	logger.New("NOOP")
}

func TestNewRejectsBadSecret(t *testing.T) {
	_, err := keystore.New(context.Background(), "too-short", nil, nil)
	require.ErrorIs(t, err, keystore.ErrConfigInvalid)
}

func TestGenerateThenActive(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)

	_, ok := ks.Active()
	require.False(t, ok)

	kp, err := ks.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, keystore.StatusActive, kp.Status)

	got, ok := ks.Active()
	require.True(t, ok)
	require.Equal(t, kp.KeyID, got.KeyID)
}

func TestGenerateTwiceFails(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	_, err = ks.Generate(context.Background())
	require.NoError(t, err)
	_, err = ks.Generate(context.Background())
	require.ErrorIs(t, err, keystore.ErrActiveKeyExists)
}

func TestRotatePreservesRetiredKeyForever(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	first, err := ks.Generate(context.Background())
	require.NoError(t, err)

	second, retiredPrev, err := ks.Rotate(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.KeyID, second.KeyID)
	require.Equal(t, first.KeyID, retiredPrev.KeyID)
	require.Equal(t, keystore.StatusRetired, retiredPrev.Status)
	require.NotNil(t, retiredPrev.RetiredAt)

	active, ok := ks.Active()
	require.True(t, ok)
	require.Equal(t, second.KeyID, active.KeyID)

	retired := ks.Retired()
	require.Len(t, retired, 1)
	require.Equal(t, first.KeyID, retired[0].KeyID)

	trusted := ks.TrustedSet()
	require.Len(t, trusted, 2)
}

func TestRotateWithNoPriorActiveKey(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	active, retiredPrev, err := ks.Rotate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Nil(t, retiredPrev)
}

func TestPersisterRoundTripsAcrossDecryptFailureOnWrongSecret(t *testing.T) {
	persister := keystore.NewMemoryPersister()
	ks1, err := keystore.New(context.Background(), testSecret, persister, nil)
	require.NoError(t, err)
	_, err = ks1.Generate(context.Background())
	require.NoError(t, err)

	otherSecret := strings.Repeat("f", 64)
	_, err = keystore.New(context.Background(), otherSecret, persister, nil)
	require.ErrorIs(t, err, keystore.ErrKeyDecryptFailed)
}

func TestPersisterRoundTripsWithCorrectSecret(t *testing.T) {
	persister := keystore.NewMemoryPersister()
	ks1, err := keystore.New(context.Background(), testSecret, persister, nil)
	require.NoError(t, err)
	kp, err := ks1.Generate(context.Background())
	require.NoError(t, err)

	ks2, err := keystore.New(context.Background(), testSecret, persister, nil)
	require.NoError(t, err)
	got, ok := ks2.Active()
	require.True(t, ok)
	require.Equal(t, kp.KeyID, got.KeyID)
	require.Equal(t, kp.Public, got.Public)
}

func TestExportImportJWKRoundTrip(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	kp, err := ks.Generate(context.Background())
	require.NoError(t, err)

	jwk := keystore.ExportJWK(kp, true)
	require.Equal(t, "OKP", jwk.Kty)
	require.Equal(t, "Ed25519", jwk.Crv)
	require.NotEmpty(t, jwk.D)

	back, err := keystore.ImportJWK(jwk)
	require.NoError(t, err)
	require.Equal(t, kp.Public, back.Public)
}

func TestExportJWKWithoutPrivateOmitsD(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	kp, err := ks.Generate(context.Background())
	require.NoError(t, err)

	jwk := keystore.ExportJWK(kp, false)
	require.Empty(t, jwk.D)
}

func TestImportJWKRejectsNonOKP(t *testing.T) {
	_, err := keystore.ImportJWK(keystore.JWK{Kty: "RSA"})
	require.ErrorIs(t, err, keystore.ErrJWKUnsupported)
}

func TestByKeyIDUnknown(t *testing.T) {
	ks, err := keystore.New(context.Background(), testSecret, nil, nil)
	require.NoError(t, err)
	_, err = ks.ByKeyID("nope")
	require.ErrorIs(t, err, keystore.ErrUnknownKeyID)
}
