package whitespace_tokenize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/textmodel"
)

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestTokenizeKeepsOffsets(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []textmodel.Token
	}{
		{
			name: "simple",
			text: "one two",
			want: []textmodel.Token{
				{Text: "one", Begin: 0, End: 3},
				{Text: "two", Begin: 4, End: 7},
			},
		},
		{
			name: "surrounding whitespace",
			text: "  padded\tout \n",
			want: []textmodel.Token{
				{Text: "padded", Begin: 2, End: 8},
				{Text: "out", Begin: 9, End: 12},
			},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "only whitespace",
			text: " \t\n",
			want: nil,
		},
		{
			name: "multibyte runes",
			text: "héllo wörld",
			want: []textmodel.Token{
				{Text: "héllo", Begin: 0, End: 6},
				{Text: "wörld", Begin: 7, End: 13},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.text))
		})
	}
}

func TestRunWrapsTokenCollection(t *testing.T) {
	got, err := Run(testContext(), &Input{Document: textmodel.RawDocument{Text: "a b c"}})
	require.NoError(t, err)
	require.Len(t, got.Tokens, 3)
	assert.Equal(t, "b", got.Tokens[1].Text)
}

func TestRegisterBindsUnaryTokenizeTask(t *testing.T) {
	reg := registry.New()
	h := handlers.New()

	require.NoError(t, (&Module{}).Register(testContext(), reg, h))

	b, ok := reg.Lookup("whitespace-tokenize")
	require.True(t, ok)
	assert.Same(t, textmodel.TokenizeTask, b.Task())
	assert.False(t, b.InputStreaming())
	assert.False(t, b.OutputStreaming())
	assert.Nil(t, b.Parent())
}
