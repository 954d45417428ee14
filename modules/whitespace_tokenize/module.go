// Package whitespace_tokenize splits documents into tokens on Unicode
// whitespace. It is the reference unary implementation of the tokenize
// task.
package whitespace_tokenize

import (
	"context"
	"unicode"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/textmodel"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the parameters of the tokenize run.
type Input struct {
	Document textmodel.RawDocument `bind:"document"`
}

// Tokenize splits text on whitespace, keeping byte offsets. It is
// shared with the streaming tokenizer.
func Tokenize(text string) []textmodel.Token {
	var tokens []textmodel.Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, textmodel.Token{Text: text[start:i], Begin: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, textmodel.Token{Text: text[start:], Begin: start, End: len(text)})
	}
	return tokens
}

// Run tokenizes a single document.
func Run(ctx context.Context, in *Input) (*textmodel.TokenCollection, error) {
	return &textmodel.TokenCollection{Tokens: Tokenize(in.Document.Text)}, nil
}

// Register wires the handler and binds the module to the unary half of
// the tokenize task.
func (m *Module) Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers) error {
	h.Register("whitespace_tokenize.Run", Run)

	_, err := reg.Register(ctx, registry.Declaration{
		ID:          "whitespace-tokenize-v1",
		Name:        "whitespace-tokenize",
		Version:     "1.0.0",
		Task:        textmodel.TokenizeTask,
		Run:         &registry.Run{Fn: Run},
		Description: "Splits documents into tokens on whitespace.",
	})
	return err
}
