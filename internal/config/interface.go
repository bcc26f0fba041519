package config

import "context"

// Loader is the interface for a format-specific configuration loader. Load
// reads a manifest from path and translates it into the format-agnostic
// model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
