package typexpr

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() Resolver {
	known := map[string]reflect.Type{
		"sentence": reflect.TypeOf(sentence{}),
		"token":    reflect.TypeOf(token{}),
		"string":   reflect.TypeOf(""),
		"int":      reflect.TypeOf(int(0)),
	}
	return func(name string) (reflect.Type, bool) {
		t, ok := known[name]
		return t, ok
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		want      Expr
		expectErr bool
	}{
		{name: "bare name", src: "sentence", want: Of[sentence]()},
		{name: "null spelling", src: "null", want: None},
		{name: "none spelling", src: "none", want: None},
		{name: "optional", src: "optional(sentence)", want: Optional(Of[sentence]())},
		{name: "union", src: "union(sentence, token)", want: Union(Of[sentence](), Of[token]())},
		{name: "union with none", src: "union(sentence, none)", want: Optional(Of[sentence]())},
		{name: "stream", src: "stream(token)", want: Stream(Of[token]())},
		{name: "stream of union", src: "stream(union(sentence, token))", want: Stream(Union(Of[sentence](), Of[token]()))},
		{name: "whitespace tolerated", src: "  union( sentence ,\ttoken )", want: Union(Of[sentence](), Of[token]())},
		{name: "unknown name", src: "paragraph", expectErr: true},
		{name: "unknown constructor", src: "list(string)", expectErr: true},
		{name: "nested stream", src: "stream(stream(token))", expectErr: true},
		{name: "stream in union", src: "union(sentence, stream(token))", expectErr: true},
		{name: "optional stream", src: "optional(stream(token))", expectErr: true},
		{name: "empty union", src: "union()", expectErr: true},
		{name: "optional arity", src: "optional(sentence, token)", expectErr: true},
		{name: "trailing garbage", src: "sentence extra", expectErr: true},
		{name: "missing close paren", src: "union(sentence", expectErr: true},
		{name: "empty input", src: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src, testResolver())
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "parsed %s, want %s", got, tc.want)
		})
	}
}

func TestParseWithoutResolver(t *testing.T) {
	_, err := Parse("sentence", nil)
	require.Error(t, err)

	// The null-like member needs no resolver.
	got, err := Parse("none", nil)
	require.NoError(t, err)
	assert.True(t, None.Equal(got))
}
