package typexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bindkit/bindkit/internal/datamodel"
)

type sentence struct {
	datamodel.Base
	Text string
}

type token struct {
	datamodel.Base
	Text string
}

type plainValue struct {
	N int
}

func TestNominalErasesPointers(t *testing.T) {
	assert.True(t, Of[*sentence]().Equal(Of[sentence]()))
	assert.True(t, Of[**sentence]().Equal(Of[sentence]()))
}

func TestUnionFlattensAndDeduplicates(t *testing.T) {
	u := Union(Union(Of[sentence](), Of[token]()), Of[sentence](), Of[string]())

	require.True(t, u.IsUnion())
	members := u.Members()
	require.Len(t, members, 3)
	assert.True(t, members[0].Equal(Of[sentence]()))
	assert.True(t, members[1].Equal(Of[token]()))
	assert.True(t, members[2].Equal(Of[string]()))
}

func TestUnionCollapsesSingleMember(t *testing.T) {
	u := Union(Of[sentence](), Of[sentence]())
	assert.Equal(t, KindNominal, u.Kind())
	assert.True(t, u.Equal(Of[sentence]()))
}

func TestOptionalIsIdempotent(t *testing.T) {
	opt := Optional(Of[sentence]())
	require.True(t, opt.IsUnion())
	assert.True(t, opt.ContainsNone())
	assert.True(t, Optional(opt).Equal(opt))
}

func TestStreamDoesNotNest(t *testing.T) {
	require.Panics(t, func() {
		Stream(Stream(Of[sentence]()))
	})
}

func TestUnionRejectsStreamMembers(t *testing.T) {
	require.Panics(t, func() {
		Union(Of[sentence](), Stream(Of[token]()))
	})
}

func TestUnionRequiresMembers(t *testing.T) {
	require.Panics(t, func() { Union() })
}

func TestEqualComparesUnionsAsSets(t *testing.T) {
	a := Union(Of[sentence](), Of[token]())
	b := Union(Of[token](), Of[sentence]())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Union(Of[sentence](), Of[string]())))
}

func TestStreamAccessors(t *testing.T) {
	s := Stream(Of[token]())
	require.True(t, s.IsStream())
	assert.True(t, s.Inner().Equal(Of[token]()))
	assert.Nil(t, s.Members())
	assert.False(t, Of[token]().IsStream())
}

func TestString(t *testing.T) {
	testCases := []struct {
		name string
		expr Expr
		want string
	}{
		{name: "primitive", expr: Of[string](), want: "string"},
		{name: "model", expr: Of[sentence](), want: "typexpr.sentence"},
		{name: "none", expr: None, want: "none"},
		{name: "optional", expr: Optional(Of[string]()), want: "optional(string)"},
		{name: "union", expr: Union(Of[sentence](), Of[token]()), want: "union(typexpr.sentence, typexpr.token)"},
		{name: "stream", expr: Stream(Of[token]()), want: "stream(typexpr.token)"},
		{name: "stream of optional", expr: Stream(Optional(Of[token]())), want: "stream(optional(typexpr.token))"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}
