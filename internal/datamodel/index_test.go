package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestIndexHoldsPrimitives(t *testing.T) {
	idx := NewIndex()

	for _, name := range []string{"string", "int", "float", "bool", "bytes", "any"} {
		_, ok := idx.Lookup(name)
		assert.True(t, ok, "primitive %q missing", name)
	}
}

func TestIndexRegister(t *testing.T) {
	idx := NewIndex()

	require.NoError(t, idx.Register("document", For[document]()))

	got, ok := idx.Lookup("document")
	require.True(t, ok)
	assert.Equal(t, For[document](), got)

	err := idx.Register("document", For[annotated]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	require.Error(t, idx.Register("", For[document]()))
	require.Error(t, idx.Register("nil-type", nil))
}

func TestIndexMustRegisterPanicsOnDuplicate(t *testing.T) {
	idx := NewIndex()
	idx.MustRegister("document", For[document]())

	require.Panics(t, func() {
		idx.MustRegister("document", For[document]())
	})
}

func TestIndexNamesSorted(t *testing.T) {
	idx := NewIndex()
	require.NoError(t, idx.Register("zeta", For[document]()))
	require.NoError(t, idx.Register("alpha", For[annotated]()))

	names := idx.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "alpha")
	assert.Contains(t, names, "zeta")
}

func TestIndexResolver(t *testing.T) {
	idx := NewIndex()
	require.NoError(t, idx.Register("document", For[document]()))

	resolve := idx.Resolver()
	got, ok := resolve("document")
	require.True(t, ok)
	assert.Equal(t, For[document](), got)

	_, ok = resolve("missing")
	assert.False(t, ok)
}

func TestCtyTypeOf(t *testing.T) {
	got, err := CtyTypeOf(For[document]())
	require.NoError(t, err)
	assert.True(t, got.IsObjectType())
	assert.True(t, got.HasAttribute("Text"))

	prim, err := CtyTypeOf(For[string]())
	require.NoError(t, err)
	assert.True(t, prim.Equals(cty.String))

	num, err := CtyTypeOf(For[int]())
	require.NoError(t, err)
	assert.True(t, num.Equals(cty.Number))

	_, err = CtyTypeOf(For[reader]())
	require.Error(t, err)
}

func TestIndexCtyType(t *testing.T) {
	idx := NewIndex()
	require.NoError(t, idx.Register("document", For[document]()))

	got, err := idx.CtyType("document")
	require.NoError(t, err)
	assert.True(t, got.IsObjectType())

	_, err = idx.CtyType("missing")
	require.Error(t, err)
}
