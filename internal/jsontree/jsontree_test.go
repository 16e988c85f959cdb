package jsontree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openprinting/go-jwt/internal/jsontree"
)

func TestParseRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := jsontree.Parse("{not json")
	assert.ErrorIs(t, err, jsontree.ErrMalformedJSON)
}

func TestParseRejectsNonObject(t *testing.T) {
	t.Parallel()

	_, err := jsontree.Parse(`[1,2,3]`)
	assert.ErrorIs(t, err, jsontree.ErrNotObject)
}

func TestExportRoundTripsExactBytes(t *testing.T) {
	t.Parallel()

	text := `{"b":1,"a":2}`
	obj, err := jsontree.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, text, obj.Export())
}

func TestSetAndFind(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	obj.SetString("sub", "alice")
	obj.SetNumber("exp", 1700000000)
	obj.SetBool("admin", true)

	v, ok := obj.Find("sub")
	require.True(t, ok)
	assert.Equal(t, jsontree.String, v.Type())
	assert.Equal(t, "alice", v.String())

	v, ok = obj.Find("exp")
	require.True(t, ok)
	assert.Equal(t, jsontree.Number, v.Type())
	assert.Equal(t, float64(1700000000), v.Number())

	v, ok = obj.Find("admin")
	require.True(t, ok)
	assert.Equal(t, jsontree.True, v.Type())
}

func TestFindMissingMember(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	_, ok := obj.Find("nope")
	assert.False(t, ok)
}

func TestClaimNameContainingDotIsASingleKey(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	obj.SetBool("http://example.com/is_root", true)

	v, ok := obj.Find("http://example.com/is_root")
	require.True(t, ok)
	assert.Equal(t, jsontree.True, v.Type())

	// A naive, unescaped path would have been interpreted as nested
	// objects ("http://example" -> "com/is_root"); confirm it wasn't.
	_, nested := obj.Find("http://example")
	assert.False(t, nested)
}

func TestDeleteIsNoOpOnMissingMember(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	obj.Delete("nope")
	assert.Equal(t, "{}", obj.Export())
}

func TestSetRawRejectsMalformedValue(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	err := obj.SetRaw("bad", "{not json")
	assert.ErrorIs(t, err, jsontree.ErrMalformedJSON)
}

func TestSetRawAcceptsNestedObject(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	err := obj.SetRaw("nested", `{"a":[1,2,3]}`)
	require.NoError(t, err)

	v, ok := obj.Find("nested")
	require.True(t, ok)
	assert.Equal(t, jsontree.ObjectKind, v.Type())
	assert.JSONEq(t, `{"a":[1,2,3]}`, v.Raw())
}

func TestKeysPreservesOrder(t *testing.T) {
	t.Parallel()

	obj := jsontree.New()
	obj.SetString("typ", "JWT")
	obj.SetString("alg", "HS256")

	assert.Equal(t, []string{"typ", "alg"}, obj.Keys())
}
