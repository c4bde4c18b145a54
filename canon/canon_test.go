package canon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grcorsair/trustcore/canon"
)

func TestMarshalOrdersKeysAtEveryDepth(t *testing.T) {
	v := map[string]any{
		"b": 1,
		"a": map[string]any{"z": 1, "y": 2},
		"c": []any{map[string]any{"q": 1, "p": 2}},
	}
	got, err := canon.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"a":{"y":2,"z":1},"b":1,"c":[{"p":2,"q":1}]}`, string(got))
}

func TestMarshalIsOrderInsensitiveToInputOrder(t *testing.T) {
	a := map[string]any{"x": 1, "y": 2}
	b := map[string]any{"y": 2, "x": 1}
	gotA, err := canon.Marshal(a)
	require.NoError(t, err)
	gotB, err := canon.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, gotA, gotB)
}

func TestMarshalRejectsFloats(t *testing.T) {
	_, err := canon.Marshal(map[string]any{"score": 1.5})
	require.ErrorIs(t, err, canon.ErrFloatNotAllowed)
}

func TestCanonicalizeJSONRejectsFloats(t *testing.T) {
	_, err := canon.CanonicalizeJSON([]byte(`{"score": 99.0}`))
	require.ErrorIs(t, err, canon.ErrFloatNotAllowed)
}

func TestMarshalShortestIntegerForm(t *testing.T) {
	got, err := canon.Marshal(map[string]any{"n": int64(100)})
	require.NoError(t, err)
	require.Equal(t, `{"n":100}`, string(got))
}

func TestMarshalStructUsesJSONTagsThenCanonicalizes(t *testing.T) {
	type subject struct {
		Type  string `json:"type"`
		Scope string `json:"scope"`
	}
	got, err := canon.MarshalStruct(subject{Type: "CorsairCPOE", Scope: "s"})
	require.NoError(t, err)
	require.Equal(t, `{"scope":"s","type":"CorsairCPOE"}`, string(got))
}

func TestHashStructDeterministic(t *testing.T) {
	h1, err := canon.HashStruct(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	h2, err := canon.HashStruct(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)
}

func TestMarshalEscapesStringsLikeJSON(t *testing.T) {
	got, err := canon.Marshal(map[string]any{"s": "a\"b"})
	require.NoError(t, err)
	require.Equal(t, `{"s":"a\"b"}`, string(got))
}

func TestMarshalInvalidJSONInput(t *testing.T) {
	_, err := canon.CanonicalizeJSON([]byte(`{not-json`))
	require.ErrorIs(t, err, canon.ErrInvalidJSON)
}
