package echo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
)

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestRunReturnsInput(t *testing.T) {
	got, err := Run(testContext(), &Input{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestRegisterAdmitsUnboundModule(t *testing.T) {
	reg := registry.New()
	h := handlers.New()

	require.NoError(t, (&Module{}).Register(testContext(), reg, h))

	b, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Nil(t, b.Task())

	// Unbound modules still get their run introspected for reporting.
	require.NotNil(t, b.Signature())
	_, ok = b.Signature().Parameter("message")
	assert.True(t, ok)
}
