package yaml_adapter

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/bindkit/bindkit/internal/config"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// manifestFile is the top-level document shape.
type manifestFile struct {
	Tasks   []*taskManifest   `yaml:"tasks"`
	Modules []*moduleManifest `yaml:"modules"`
}

type taskManifest struct {
	Name                string               `yaml:"name"`
	Description         string               `yaml:"description"`
	UnaryParameters     []*parameterManifest `yaml:"unary_parameters"`
	StreamingParameters []*parameterManifest `yaml:"streaming_parameters"`
	UnaryOutput         *outputManifest      `yaml:"unary_output"`
	StreamingOutput     *outputManifest      `yaml:"streaming_output"`

	// Legacy spellings.
	RequiredParameters []*parameterManifest `yaml:"required_parameters"`
	Output             *outputManifest      `yaml:"output"`
}

type parameterManifest struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Default     any    `yaml:"default"`
	Optional    bool   `yaml:"optional"`
}

type outputManifest struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type moduleManifest struct {
	Name        string       `yaml:"name"`
	ID          string       `yaml:"id"`
	Version     string       `yaml:"version"`
	Task        string       `yaml:"task"`
	Extends     string       `yaml:"extends"`
	Description string       `yaml:"description"`
	Run         *runManifest `yaml:"run"`
}

type runManifest struct {
	Handler         string               `yaml:"handler"`
	InputStreaming  bool                 `yaml:"input_streaming"`
	OutputStreaming bool                 `yaml:"output_streaming"`
	Parameters      []*parameterManifest `yaml:"parameters"`
	Returns         string               `yaml:"returns"`
}

func (l *Loader) translateTask(m *taskManifest) (*config.TaskDefinition, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("task manifest needs a name")
	}
	def := &config.TaskDefinition{
		Name:        m.Name,
		Description: m.Description,
	}

	var err error
	if def.UnaryParameters, err = l.translateParameters(m.UnaryParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", m.Name, err)
	}
	if def.StreamingParameters, err = l.translateParameters(m.StreamingParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", m.Name, err)
	}
	if def.RequiredParameters, err = l.translateParameters(m.RequiredParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", m.Name, err)
	}

	if m.UnaryOutput != nil {
		expr, err := l.parseType(m.UnaryOutput.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: unary output: %w", m.Name, err)
		}
		def.UnaryOutput = &expr
	}
	if m.StreamingOutput != nil {
		expr, err := l.parseType(m.StreamingOutput.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: streaming output: %w", m.Name, err)
		}
		def.StreamingOutput = &expr
	}
	if m.Output != nil {
		expr, err := l.parseType(m.Output.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: output: %w", m.Name, err)
		}
		def.OutputType = &expr
	}

	return def, nil
}

// translateParameters keeps the nil/empty distinction: a manifest list
// of length zero yields a nil map, which is how the model tells an
// absent parameter group apart from a declared empty one.
func (l *Loader) translateParameters(manifests []*parameterManifest) (map[string]*config.ParameterDefinition, error) {
	if len(manifests) == 0 {
		return nil, nil
	}

	params := make(map[string]*config.ParameterDefinition, len(manifests))
	for _, m := range manifests {
		if m.Name == "" {
			return nil, fmt.Errorf("parameter needs a name")
		}
		if _, dup := params[m.Name]; dup {
			return nil, fmt.Errorf("parameter %q defined more than once", m.Name)
		}
		param, err := l.translateParameter(m)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", m.Name, err)
		}
		params[m.Name] = param
	}
	return params, nil
}

func (l *Loader) translateParameter(m *parameterManifest) (*config.ParameterDefinition, error) {
	expr, err := l.parseType(m.Type)
	if err != nil {
		return nil, err
	}

	def := &config.ParameterDefinition{
		Name:        m.Name,
		Type:        expr,
		Description: m.Description,
		Optional:    m.Optional,
	}

	if m.Default != nil {
		val, err := scalarValue(m.Default)
		if err != nil {
			return nil, err
		}
		def.Default = &val
	}

	return def, nil
}

func (l *Loader) translateModule(m *moduleManifest) (*config.ModuleDefinition, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("module manifest needs a name")
	}
	def := &config.ModuleDefinition{
		ID:          m.ID,
		Name:        m.Name,
		Version:     m.Version,
		Task:        m.Task,
		Extends:     m.Extends,
		Description: m.Description,
	}

	if m.Run != nil {
		run := &config.RunDefinition{
			Handler:         m.Run.Handler,
			InputStreaming:  m.Run.InputStreaming,
			OutputStreaming: m.Run.OutputStreaming,
		}

		var err error
		if run.Parameters, err = l.translateParameters(m.Run.Parameters); err != nil {
			return nil, fmt.Errorf("module %q: run: %w", m.Name, err)
		}
		if m.Run.Returns != "" {
			expr, err := l.parseType(m.Run.Returns)
			if err != nil {
				return nil, fmt.Errorf("module %q: returns: %w", m.Name, err)
			}
			run.Return = &expr
		}

		def.Run = run
	}

	return def, nil
}

func (l *Loader) parseType(src string) (typexpr.Expr, error) {
	if src == "" {
		return typexpr.Expr{}, fmt.Errorf("missing type expression")
	}
	return typexpr.Parse(src, l.index.Resolver())
}

// scalarValue lifts a decoded YAML scalar into a cty value. Compound
// defaults are not supported; convertibility against the declared type
// is checked later, when the descriptor is built.
func scalarValue(v any) (cty.Value, error) {
	switch x := v.(type) {
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case uint64:
		return cty.NumberUIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	default:
		return cty.NilVal, fmt.Errorf("default values must be scalars, got %T", v)
	}
}
