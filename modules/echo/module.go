// Package echo returns its input unchanged. It registers without a
// task reference and exists for wiring experiments in manifests.
package echo

import (
	"context"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the parameters of the echo run.
type Input struct {
	Message string `bind:"message"`
}

// Run returns the message as-is.
func Run(ctx context.Context, in *Input) (string, error) {
	return in.Message, nil
}

// Register wires the handler and admits the module unbound. Without a
// task reference the signature is recorded but never validated.
func (m *Module) Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers) error {
	h.Register("echo.Run", Run)

	_, err := reg.Register(ctx, registry.Declaration{
		ID:          "echo-v1",
		Name:        "echo",
		Version:     "1.0.0",
		Run:         &registry.Run{Fn: Run},
		Description: "Returns its input unchanged.",
	})
	return err
}
