package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bindkit/bindkit/internal/config"
	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/hcl_adapter"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/yaml_adapter"
	"github.com/bindkit/bindkit/modules/textmodel"
)

// App encapsulates a fully validated component universe: the data model
// index, the task catalog, the binding registry and the handler table.
type App struct {
	logger   *slog.Logger
	index    *datamodel.Index
	catalog  *task.Catalog
	registry *registry.Registry
	handlers *handlers.Handlers
}

// New is the constructor for the main application. It registers the
// compiled-in modules, loads every manifest reachable from the
// configured paths and validates all module bindings. A non-nil error
// means at least one definition or binding was rejected.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	idx := datamodel.NewIndex()
	cat := task.NewCatalog()
	reg := registry.New()
	h := handlers.New()

	if err := textmodel.Register(idx, cat); err != nil {
		return nil, fmt.Errorf("failed to register the builtin data model: %w", err)
	}
	logger.Debug("Builtin data model registered.", "types", len(idx.Names()), "tasks", cat.Len())

	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(ctx, reg, h); err != nil {
			return nil, fmt.Errorf("module registration failed: %w", err)
		}
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "bindings", reg.Len())

	model, err := loadManifests(ctx, idx, cfg.ManifestPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	if err := config.Apply(ctx, model, cat, reg, h); err != nil {
		return nil, err
	}
	logger.Debug("Manifest definitions applied.", "tasks", cat.Len(), "bindings", reg.Len())

	return &App{
		logger:   logger,
		index:    idx,
		catalog:  cat,
		registry: reg,
		handlers: h,
	}, nil
}

// loadManifests merges the models produced by every format adapter.
// Each adapter selects the files it understands by extension, so all
// adapters can be pointed at the same paths.
func loadManifests(ctx context.Context, idx *datamodel.Index, paths []string) (*config.Model, error) {
	loaders := []config.Loader{
		hcl_adapter.NewLoader(idx),
		yaml_adapter.NewLoader(idx),
	}

	model := config.NewModel()
	for _, loader := range loaders {
		part, err := loader.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// Registry returns the application's binding registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Catalog returns the application's task catalog.
func (a *App) Catalog() *task.Catalog { return a.catalog }

// Index returns the application's data model index.
func (a *App) Index() *datamodel.Index { return a.index }

// Handlers returns the application's handler table.
func (a *App) Handlers() *handlers.Handlers { return a.handlers }

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }
