package signature

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/typexpr"
)

type doc struct {
	datamodel.Base
	Text string
}

type result struct {
	datamodel.Base
	Label string
}

func TestFromFuncUnaryShape(t *testing.T) {
	type input struct {
		Text  string `bind:"text"`
		Limit int
	}
	fn := func(ctx context.Context, in *input) (*result, error) { return nil, nil }

	sig, err := FromFunc(fn)
	require.NoError(t, err)

	assert.Equal(t, "Run", sig.MethodName())
	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, "text", sig.Parameters[0].Name)
	assert.True(t, sig.Parameters[0].Type.Equal(typexpr.Of[string]()))
	assert.Equal(t, "limit", sig.Parameters[1].Name)
	assert.True(t, sig.Parameters[1].Type.Equal(typexpr.Of[int]()))

	require.NotNil(t, sig.Return)
	assert.True(t, sig.Return.Equal(typexpr.Of[result]()))
}

func TestFromFuncFieldHandling(t *testing.T) {
	type input struct {
		Doc      doc             `bind:"doc"`
		Hint     *string         `bind:"hint,optional"`
		Stream   <-chan doc      `bind:"docs"`
		Ignored  string          `bind:"-"`
		hidden   int
		CamelTag map[string]bool `bind:""`
	}
	fn := func(ctx context.Context, in input) error { return nil }

	sig, err := FromFunc(fn)
	require.NoError(t, err)

	types := sig.ParameterTypes()
	require.Len(t, types, 4)
	assert.True(t, types["doc"].Equal(typexpr.Of[doc]()))
	assert.True(t, types["hint"].Equal(typexpr.Optional(typexpr.Of[string]())))
	assert.True(t, types["docs"].Equal(typexpr.Stream(typexpr.Of[doc]())))
	_, hasIgnored := types["ignored"]
	assert.False(t, hasIgnored)
	assert.True(t, types["camel_tag"].Equal(typexpr.Of[map[string]bool]()))

	assert.Nil(t, sig.Return)
}

func TestFromFuncReturnShapes(t *testing.T) {
	testCases := []struct {
		name       string
		fn         any
		wantReturn *typexpr.Expr
		expectErr  bool
	}{
		{
			name: "value and error",
			fn:   func(ctx context.Context) (result, error) { return result{}, nil },
			wantReturn: func() *typexpr.Expr {
				e := typexpr.Of[result]()
				return &e
			}(),
		},
		{
			name: "pointer result erased",
			fn:   func(ctx context.Context) (*result, error) { return nil, nil },
			wantReturn: func() *typexpr.Expr {
				e := typexpr.Of[result]()
				return &e
			}(),
		},
		{
			name: "stream result",
			fn:   func(ctx context.Context) (<-chan result, error) { return nil, nil },
			wantReturn: func() *typexpr.Expr {
				e := typexpr.Stream(typexpr.Of[result]())
				return &e
			}(),
		},
		{
			name:       "error only means undeclared",
			fn:         func(ctx context.Context) error { return nil },
			wantReturn: nil,
		},
		{
			name:       "any result means undeclared",
			fn:         func(ctx context.Context) (any, error) { return nil, nil },
			wantReturn: nil,
		},
		{
			name:      "second result must be error",
			fn:        func(ctx context.Context) (result, string) { return result{}, "" },
			expectErr: true,
		},
		{
			name:      "three results rejected",
			fn:        func(ctx context.Context) (result, result, error) { return result{}, result{}, nil },
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sig, err := FromFunc(tc.fn)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantReturn == nil {
				assert.Nil(t, sig.Return)
				return
			}
			require.NotNil(t, sig.Return)
			assert.True(t, tc.wantReturn.Equal(*sig.Return))
		})
	}
}

func TestFromFuncRejectsBadShapes(t *testing.T) {
	testCases := []struct {
		name string
		fn   any
	}{
		{name: "not a function", fn: 42},
		{name: "nil", fn: nil},
		{name: "two inputs after context", fn: func(ctx context.Context, a, b struct{}) error { return nil }},
		{name: "non-struct input", fn: func(ctx context.Context, s string) error { return nil }},
		{name: "optional stream field", fn: func(ctx context.Context, in struct {
			Docs <-chan doc `bind:"docs,optional"`
		}) error {
			return nil
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromFunc(tc.fn)
			require.Error(t, err)
		})
	}
}

func TestFromFuncWithoutContext(t *testing.T) {
	type input struct {
		Text string `bind:"text"`
	}
	sig, err := FromFunc(func(in *input) (*result, error) { return nil, nil })
	require.NoError(t, err)
	require.Len(t, sig.Parameters, 1)
	assert.Equal(t, "text", sig.Parameters[0].Name)
}

func TestFromFuncNoParameters(t *testing.T) {
	sig, err := FromFunc(func(ctx context.Context) (*result, error) { return nil, nil })
	require.NoError(t, err)
	assert.Empty(t, sig.Parameters)
}

func TestLowerSnake(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Text", want: "text"},
		{in: "TextChunk", want: "text_chunk"},
		{in: "HTTPBody", want: "http_body"},
		{in: "ID", want: "id"},
		{in: "DocID", want: "doc_id"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, lowerSnake(tc.in))
		})
	}
}

func TestParameterLookup(t *testing.T) {
	sig := &Signature{Parameters: []Parameter{{Name: "text", Type: typexpr.Of[string]()}}}

	p, ok := sig.Parameter("text")
	require.True(t, ok)
	assert.Equal(t, "text", p.Name)

	_, ok = sig.Parameter("missing")
	assert.False(t, ok)
}
