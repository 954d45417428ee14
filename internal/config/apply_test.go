package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/typexpr"
)

type note struct {
	datamodel.Base
	Text string
}

type annotateInput struct {
	Text string `bind:"text"`
}

func annotateRun(ctx context.Context, in *annotateInput) (*note, error) {
	return &note{Text: in.Text}, nil
}

func exprOf(e typexpr.Expr) *typexpr.Expr { return &e }

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func testDeps() (*task.Catalog, *registry.Registry, *handlers.Handlers) {
	h := handlers.New()
	h.Register("annotate.Run", annotateRun)
	return task.NewCatalog(), registry.New(), h
}

func annotateTaskDefinition() *TaskDefinition {
	return &TaskDefinition{
		Name: "annotate",
		UnaryParameters: map[string]*ParameterDefinition{
			"text": {Name: "text", Type: typexpr.Of[string]()},
		},
		UnaryOutput: exprOf(typexpr.Of[note]()),
	}
}

func TestApplyTasksAndModules(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(annotateTaskDefinition()))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name:    "annotator",
		Version: "0.1.0",
		Task:    "annotate",
		Run:     &RunDefinition{Handler: "annotate.Run"},
	}))

	require.NoError(t, Apply(testContext(), m, cat, reg, h))

	tk, ok := cat.Get("annotate")
	require.True(t, ok)
	assert.True(t, tk.Bindable())

	b, ok := reg.Lookup("annotator")
	require.True(t, ok)
	assert.Same(t, tk, b.Task())
	assert.Equal(t, "0.1.0", b.Version())
}

func TestApplyBindsChildBeforeParentInModelOrder(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(annotateTaskDefinition()))
	// "aa-child" sorts before the parent it extends.
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name:    "aa-child",
		Extends: "zz-base",
	}))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name: "zz-base",
		Task: "annotate",
		Run:  &RunDefinition{Handler: "annotate.Run"},
	}))

	require.NoError(t, Apply(testContext(), m, cat, reg, h))

	base, ok := reg.Lookup("zz-base")
	require.True(t, ok)
	child, ok := reg.Lookup("aa-child")
	require.True(t, ok)
	assert.Same(t, base, child.Parent())
	assert.Same(t, base.Task(), child.Task())
}

func TestApplyLegacyTaskSpelling(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(&TaskDefinition{
		Name: "annotate",
		RequiredParameters: map[string]*ParameterDefinition{
			"text": {Name: "text", Type: typexpr.Of[string]()},
		},
		OutputType: exprOf(typexpr.Of[note]()),
	}))

	require.NoError(t, Apply(testContext(), m, cat, reg, h))

	tk, ok := cat.Get("annotate")
	require.True(t, ok)
	params := tk.Parameters(false)
	require.Len(t, params, 1)
	assert.True(t, params["text"].Equal(typexpr.Of[string]()))
}

func TestApplyWrapsOptionalParameters(t *testing.T) {
	cat, reg, h := testDeps()

	def := annotateTaskDefinition()
	def.UnaryParameters["lang"] = &ParameterDefinition{
		Name:     "lang",
		Type:     typexpr.Of[string](),
		Optional: true,
		Default:  ctyPtr(cty.StringVal("en")),
	}

	m := NewModel()
	require.NoError(t, m.AddTask(def))
	require.NoError(t, Apply(testContext(), m, cat, reg, h))

	tk, _ := cat.Get("annotate")
	params := tk.Parameters(false)
	assert.True(t, params["lang"].Equal(typexpr.Optional(typexpr.Of[string]())))
	assert.True(t, params["text"].Equal(typexpr.Of[string]()))
}

func TestApplyExplicitSignatureRun(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(annotateTaskDefinition()))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name: "declared",
		Task: "annotate",
		Run: &RunDefinition{
			Parameters: map[string]*ParameterDefinition{
				"text": {Name: "text", Type: typexpr.Of[string]()},
			},
			Return: exprOf(typexpr.Of[note]()),
		},
	}))

	require.NoError(t, Apply(testContext(), m, cat, reg, h))

	b, ok := reg.Lookup("declared")
	require.True(t, ok)
	require.NotNil(t, b.Signature())
	assert.Equal(t, "text", b.Signature().Parameters[0].Name)
}

func TestApplyBatchesFailures(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(annotateTaskDefinition()))
	require.NoError(t, m.AddTask(&TaskDefinition{
		Name: "broken",
		StreamingParameters: map[string]*ParameterDefinition{
			"text": {Name: "text", Type: typexpr.Of[string]()},
		},
	}))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name: "orphan",
		Task: "no-such-task",
		Run:  &RunDefinition{Handler: "annotate.Run"},
	}))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name:    "stray",
		Extends: "ghost",
	}))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name: "handlerless",
		Task: "annotate",
		Run:  &RunDefinition{Handler: "missing.Run"},
	}))

	err := Apply(testContext(), m, cat, reg, h)
	require.Error(t, err)
	assert.ErrorContains(t, err, "manifest application failed")
	assert.ErrorContains(t, err, "must be a stream")
	assert.ErrorContains(t, err, `references unknown task "no-such-task"`)
	assert.ErrorContains(t, err, `extends unknown module "ghost"`)
	assert.ErrorContains(t, err, `unknown handler "missing.Run"`)
}

func TestApplyReportsExtendsCycle(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddModule(&ModuleDefinition{Name: "a", Extends: "b"}))
	require.NoError(t, m.AddModule(&ModuleDefinition{Name: "b", Extends: "a"}))

	err := Apply(testContext(), m, cat, reg, h)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unresolvable extends chain")
	assert.ErrorContains(t, err, "a")
	assert.ErrorContains(t, err, "b")
}

func TestApplyRejectsBadDefault(t *testing.T) {
	cat, reg, h := testDeps()

	def := annotateTaskDefinition()
	def.UnaryParameters["limit"] = &ParameterDefinition{
		Name:    "limit",
		Type:    typexpr.Of[int](),
		Default: ctyPtr(cty.ListVal([]cty.Value{cty.StringVal("x")})),
	}

	m := NewModel()
	require.NoError(t, m.AddTask(def))

	err := Apply(testContext(), m, cat, reg, h)
	require.Error(t, err)
	assert.ErrorContains(t, err, `default for parameter "limit"`)
}

func TestApplyRejectsMixedRunDeclaration(t *testing.T) {
	cat, reg, h := testDeps()

	m := NewModel()
	require.NoError(t, m.AddTask(annotateTaskDefinition()))
	require.NoError(t, m.AddModule(&ModuleDefinition{
		Name: "confused",
		Task: "annotate",
		Run: &RunDefinition{
			Handler: "annotate.Run",
			Return:  exprOf(typexpr.Of[note]()),
		},
	}))

	err := Apply(testContext(), m, cat, reg, h)
	require.Error(t, err)
	assert.ErrorContains(t, err, "both a handler and an explicit signature")
}

func ctyPtr(v cty.Value) *cty.Value { return &v }
