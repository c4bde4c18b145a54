package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/config"
)

func TestValidateRequiresSecret(t *testing.T) {
	c := config.Config{}
	require.ErrorIs(t, c.Validate(), config.ErrMissingSecret)
}

func TestValidateRejectsNegativeFields(t *testing.T) {
	base := config.Config{KeyEncryptionSecret: "secret"}

	c := base
	c.MaxExpiryDays = -1
	require.ErrorIs(t, c.Validate(), config.ErrInvalidMaxExpiryDays)

	c = base
	c.MaxCPOEBytes = -1
	require.ErrorIs(t, c.Validate(), config.ErrInvalidMaxCPOEBytes)

	c = base
	c.DIDResolveTimeoutMs = -1
	require.ErrorIs(t, c.Validate(), config.ErrInvalidDIDTimeout)
}

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	c := config.Config{KeyEncryptionSecret: "secret"}.WithDefaults()
	require.Equal(t, config.DefaultMaxExpiryDays, c.MaxExpiryDays)
	require.Equal(t, config.DefaultMaxCPOEBytes, c.MaxCPOEBytes)
	require.Equal(t, config.DefaultDIDResolveTimeoutMs, c.DIDResolveTimeoutMs)
}

func TestWithDefaultsPreservesExplicitValues(t *testing.T) {
	c := config.Config{KeyEncryptionSecret: "secret", MaxExpiryDays: 30}.WithDefaults()
	require.Equal(t, 30, c.MaxExpiryDays)
}

func TestDIDResolveTimeout(t *testing.T) {
	c := config.Config{DIDResolveTimeoutMs: 5000}
	require.Equal(t, 5*time.Second, c.DIDResolveTimeout())
}
