// Package chunker windows a document into a stream of fixed-size
// chunks. It implements the chunk task: unary parameters in, streaming
// output out.
package chunker

import (
	"context"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/textmodel"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the parameters of the chunk run. Window is the chunk
// size in runes and may be omitted.
type Input struct {
	Document textmodel.RawDocument `bind:"document"`
	Window   *int                  `bind:"window,optional"`
}

// defaultWindow is used when the manifest does not size the chunks.
const defaultWindow = 64

// Run emits the document as a stream of rune windows. The output
// channel closes after the last chunk or when the context is canceled.
func Run(ctx context.Context, in *Input) (<-chan textmodel.Chunk, error) {
	window := defaultWindow
	if in.Window != nil && *in.Window > 0 {
		window = *in.Window
	}

	out := make(chan textmodel.Chunk)
	go func() {
		defer close(out)
		runes := []rune(in.Document.Text)
		for off := 0; off < len(runes); off += window {
			end := min(off+window, len(runes))
			select {
			case out <- textmodel.Chunk{Text: string(runes[off:end]), Offset: off}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Register wires the handler and binds the module to the chunk task.
func (m *Module) Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers) error {
	h.Register("chunker.Run", Run)

	_, err := reg.Register(ctx, registry.Declaration{
		ID:      "chunker-v1",
		Name:    "chunker",
		Version: "1.0.0",
		Task:    textmodel.ChunkTask,
		Run: &registry.Run{
			Fn:              Run,
			OutputStreaming: true,
		},
		Description: "Windows documents into streams of chunks.",
	})
	return err
}
