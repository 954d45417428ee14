// Package yaml_adapter loads task and module manifests written in YAML
// and translates them into the format-agnostic config model. Type
// expressions appear as strings in the manifest vocabulary, for example
// "stream(union(sentence, token))".
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bindkit/bindkit/internal/config"
	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/fsutil"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct {
	index *datamodel.Index
}

// NewLoader creates a YAML manifest loader that resolves type names
// against idx.
func NewLoader(idx *datamodel.Index) *Loader {
	return &Loader{index: idx}
}

// Load parses every .yaml and .yml manifest reachable from paths and
// translates the documents into the model. Paths that do not exist are
// skipped, so default search locations can be probed freely.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := l.findManifests(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML manifests.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		if err := l.loadFile(file, model); err != nil {
			return nil, err
		}
		logger.Debug("Loaded manifest file.", "file", file)
	}

	logger.Debug("YAML loading complete.", "tasks", len(model.Tasks), "modules", len(model.Modules))
	return model, nil
}

// loadFile decodes one manifest file into the model. Files may carry
// several "---" separated documents; each is translated in order.
func (l *Loader) loadFile(path string, model *config.Model) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading manifest %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	for {
		var root manifestFile
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}

		for _, m := range root.Tasks {
			def, err := l.translateTask(m)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := model.AddTask(def); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		for _, m := range root.Modules {
			def, err := l.translateModule(m)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := model.AddModule(def); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	}
}

// findManifests flattens paths into the sorted list of .yaml and .yml
// files they contain. Directories are walked recursively; duplicates
// are dropped.
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
			for _, ext := range []string{".yaml", ".yml"} {
				files, err := fsutil.FindByExtension(path, ext)
				if err != nil {
					return nil, err
				}
				for _, f := range files {
					add(f)
				}
			}
		} else if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
			add(path)
		}
	}

	slices.Sort(all)
	return all, nil
}
