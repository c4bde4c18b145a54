package corsairerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/corsairerr"
	"github.com/grcorsair/trustcore/keystore"
	"github.com/grcorsair/trustcore/sdjwt"
	"github.com/grcorsair/trustcore/signer"
)

func TestClassifyMatchesDirectSentinel(t *testing.T) {
	kind, ok := corsairerr.Classify(signer.ErrExpired)
	require.True(t, ok)
	require.Equal(t, corsairerr.KindExpired, kind)
}

func TestClassifyMatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("verifying credential: %w", signer.ErrSignatureInvalid)
	kind, ok := corsairerr.Classify(wrapped)
	require.True(t, ok)
	require.Equal(t, corsairerr.KindSignatureInvalid, kind)
}

func TestClassifyUnknownErrorFails(t *testing.T) {
	_, ok := corsairerr.Classify(errors.New("not a sentinel"))
	require.False(t, ok)
}

func TestToEnvelopeMapsKnownKind(t *testing.T) {
	status, env := corsairerr.ToEnvelope(keystore.ErrKeyMissing)
	require.Equal(t, 404, status)
	require.False(t, env.Ok)
	require.Equal(t, corsairerr.CodeNotFound, env.Error.Code)
}

func TestToEnvelopeOversizeInputMapsTo413(t *testing.T) {
	status, env := corsairerr.ToEnvelope(sdjwt.ErrDisclosureMismatch)
	require.Equal(t, 422, status)
	require.Equal(t, corsairerr.CodeValidationError, env.Error.Code)
}

func TestToEnvelopeUnrecognizedErrorIsInternalAndOpaque(t *testing.T) {
	status, env := corsairerr.ToEnvelope(errors.New("leaked internal detail: /etc/shadow"))
	require.Equal(t, 500, status)
	require.Equal(t, corsairerr.CodeInternalError, env.Error.Code)
	require.NotContains(t, env.Error.Message, "/etc/shadow")
}

func TestToEnvelopeAppErrorUsesOwnMessage(t *testing.T) {
	appErr := corsairerr.New(corsairerr.KindBlockedHost, "host is not reachable from this deployment", nil)
	status, env := corsairerr.ToEnvelope(appErr)
	require.Equal(t, 400, status)
	require.Equal(t, "host is not reachable from this deployment", env.Error.Message)
}

func TestWrapPreservesExistingAppError(t *testing.T) {
	original := corsairerr.New(corsairerr.KindChainBroken, "chain reorder detected", nil)
	require.Same(t, original, corsairerr.Wrap(original))
}
