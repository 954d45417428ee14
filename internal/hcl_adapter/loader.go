// Package hcl_adapter loads task and module manifests written in HCL
// and translates them into the format-agnostic config model.
package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/bindkit/bindkit/internal/config"
	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/fsutil"
	"github.com/bindkit/bindkit/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	index *datamodel.Index
}

// NewLoader creates an HCL manifest loader that resolves type names
// against idx.
func NewLoader(idx *datamodel.Index) *Loader {
	return &Loader{index: idx}
}

// Load parses every .hcl manifest reachable from paths and translates
// the blocks into the model. Paths that do not exist are skipped, so
// default search locations can be probed freely.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findManifests(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL manifests.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Tasks {
			def, err := l.translateTask(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if err := model.AddTask(def); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		for _, block := range root.Modules {
			def, err := l.translateModule(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if err := model.AddModule(def); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		logger.Debug("Loaded manifest file.", "file", file)
	}

	logger.Debug("HCL loading complete.", "tasks", len(model.Tasks), "modules", len(model.Modules))
	return model, nil
}

// findManifests flattens paths into the sorted list of .hcl files they
// contain. Directories are walked recursively; duplicates are dropped.
func (l *Loader) findManifests(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			files, err := fsutil.FindByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}

	slices.Sort(all)
	return all, nil
}
