// Package schema declares the HCL shapes of task and module manifests.
//
// Type attributes stay as raw hcl.Expression here: type keywords like
// string or stream(verdict) are not evaluatable values, so the adapter
// translates them straight off the syntax tree.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// File is the root set of blocks any manifest file may contain. Unknown
// content lands in Remain instead of failing the decode, so manifest
// files can carry other tools' blocks alongside ours.
type File struct {
	Tasks   []*TaskBlock   `hcl:"task,block"`
	Modules []*ModuleBlock `hcl:"module,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// TaskBlock mirrors a `task "<name>" { ... }` block.
type TaskBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`

	UnaryParameters     []*ParameterBlock `hcl:"unary_parameter,block"`
	StreamingParameters []*ParameterBlock `hcl:"streaming_parameter,block"`
	UnaryOutput         *OutputBlock      `hcl:"unary_output,block"`
	StreamingOutput     *OutputBlock      `hcl:"streaming_output,block"`

	// Legacy spellings accepted for older manifests.
	RequiredParameters []*ParameterBlock `hcl:"required_parameter,block"`
	Output             *OutputBlock      `hcl:"output,block"`
}

// ParameterBlock mirrors one parameter declaration inside a task or run
// block.
type ParameterBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}

// OutputBlock mirrors an output declaration inside a task block.
type OutputBlock struct {
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// ModuleBlock mirrors a `module "<name>" { ... }` block.
type ModuleBlock struct {
	Name        string    `hcl:"name,label"`
	ID          string    `hcl:"id,optional"`
	Version     string    `hcl:"version,optional"`
	Task        string    `hcl:"task,optional"`
	Extends     string    `hcl:"extends,optional"`
	Description string    `hcl:"description,optional"`
	Run         *RunBlock `hcl:"run,block"`
}

// RunBlock mirrors a module's `run { ... }` block. Handler names a
// registered Go function; parameter blocks plus returns declare an
// explicit signature instead.
type RunBlock struct {
	Handler         string            `hcl:"handler,optional"`
	InputStreaming  bool              `hcl:"input_streaming,optional"`
	OutputStreaming bool              `hcl:"output_streaming,optional"`
	Parameters      []*ParameterBlock `hcl:"parameter,block"`
	Returns         hcl.Expression    `hcl:"returns,optional"`
}
