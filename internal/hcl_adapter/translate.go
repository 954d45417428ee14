package hcl_adapter

import (
	"fmt"

	"github.com/bindkit/bindkit/internal/config"
	"github.com/bindkit/bindkit/internal/schema"
)

func (l *Loader) translateTask(block *schema.TaskBlock) (*config.TaskDefinition, error) {
	def := &config.TaskDefinition{
		Name:        block.Name,
		Description: block.Description,
	}

	var err error
	if def.UnaryParameters, err = l.translateParameters(block.UnaryParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", block.Name, err)
	}
	if def.StreamingParameters, err = l.translateParameters(block.StreamingParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", block.Name, err)
	}
	if def.RequiredParameters, err = l.translateParameters(block.RequiredParameters); err != nil {
		return nil, fmt.Errorf("task %q: %w", block.Name, err)
	}

	if block.UnaryOutput != nil {
		expr, err := l.translateType(block.UnaryOutput.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: unary output: %w", block.Name, err)
		}
		def.UnaryOutput = &expr
	}
	if block.StreamingOutput != nil {
		expr, err := l.translateType(block.StreamingOutput.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: streaming output: %w", block.Name, err)
		}
		def.StreamingOutput = &expr
	}
	if block.Output != nil {
		expr, err := l.translateType(block.Output.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: output: %w", block.Name, err)
		}
		def.OutputType = &expr
	}

	return def, nil
}

// translateParameters keeps the nil/empty distinction: a block list of
// length zero yields a nil map, which is how the model tells an absent
// parameter group apart from a declared empty one.
func (l *Loader) translateParameters(blocks []*schema.ParameterBlock) (map[string]*config.ParameterDefinition, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	params := make(map[string]*config.ParameterDefinition, len(blocks))
	for _, block := range blocks {
		if _, dup := params[block.Name]; dup {
			return nil, fmt.Errorf("parameter %q defined more than once", block.Name)
		}
		param, err := l.translateParameter(block)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", block.Name, err)
		}
		params[block.Name] = param
	}
	return params, nil
}

func (l *Loader) translateParameter(block *schema.ParameterBlock) (*config.ParameterDefinition, error) {
	expr, err := l.translateType(block.Type)
	if err != nil {
		return nil, err
	}
	return &config.ParameterDefinition{
		Name:        block.Name,
		Type:        expr,
		Description: block.Description,
		Default:     block.Default,
		Optional:    block.Optional,
	}, nil
}

func (l *Loader) translateModule(block *schema.ModuleBlock) (*config.ModuleDefinition, error) {
	def := &config.ModuleDefinition{
		ID:          block.ID,
		Name:        block.Name,
		Version:     block.Version,
		Task:        block.Task,
		Extends:     block.Extends,
		Description: block.Description,
	}

	if block.Run != nil {
		run, err := l.translateRun(block.Name, block.Run)
		if err != nil {
			return nil, err
		}
		def.Run = run
	}

	return def, nil
}

func (l *Loader) translateRun(moduleName string, block *schema.RunBlock) (*config.RunDefinition, error) {
	run := &config.RunDefinition{
		Handler:         block.Handler,
		InputStreaming:  block.InputStreaming,
		OutputStreaming: block.OutputStreaming,
	}

	var err error
	if run.Parameters, err = l.translateParameters(block.Parameters); err != nil {
		return nil, fmt.Errorf("module %q: run: %w", moduleName, err)
	}

	if isExprDefined(block.Returns) {
		expr, err := l.translateType(block.Returns)
		if err != nil {
			return nil, fmt.Errorf("module %q: returns: %w", moduleName, err)
		}
		run.Return = &expr
	}

	return run, nil
}
