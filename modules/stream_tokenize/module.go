// Package stream_tokenize tokenizes a stream of documents into one
// stream of tokens. It implements the streaming halves of the tokenize
// task.
package stream_tokenize

import (
	"context"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/textmodel"
	"github.com/bindkit/bindkit/modules/whitespace_tokenize"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the parameters of the streaming tokenize run.
type Input struct {
	Documents <-chan textmodel.RawDocument `bind:"documents"`
}

// Run re-emits every document's tokens on a single output stream. The
// output channel closes when the input stream does or the context is
// canceled.
func Run(ctx context.Context, in *Input) (<-chan textmodel.Token, error) {
	out := make(chan textmodel.Token)
	go func() {
		defer close(out)
		for doc := range in.Documents {
			for _, tok := range whitespace_tokenize.Tokenize(doc.Text) {
				select {
				case out <- tok:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Register wires the handler and binds the module to the streaming
// halves of the tokenize task. It extends the unary tokenizer when that
// binding is already admitted.
func (m *Module) Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers) error {
	h.Register("stream_tokenize.Run", Run)

	parent, _ := reg.Lookup("whitespace-tokenize")
	_, err := reg.Register(ctx, registry.Declaration{
		ID:      "stream-tokenize-v1",
		Name:    "stream-tokenize",
		Version: "1.0.0",
		Task:    textmodel.TokenizeTask,
		Parent:  parent,
		Run: &registry.Run{
			Fn:              Run,
			InputStreaming:  true,
			OutputStreaming: true,
		},
		Description: "Tokenizes a document stream into a token stream.",
	})
	return err
}
