package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, in order, and merges
	// them into a single model. Options in later files override earlier ones.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
