package config

import "context"

// Loader is the interface for a format-specific manifest loader. A
// loader is agnostic to where the paths came from; missing paths are
// skipped rather than treated as errors so default search locations can
// be probed freely.
type Loader interface {
	// Load reads every manifest reachable from the given paths and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
