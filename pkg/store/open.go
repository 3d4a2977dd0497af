package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load constructs the backend described by cfg. A nil cfg is read with
// LoadConfig.
func Load(cfg *Config, opts ...Option) (Backend, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig(nil)
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Backend {
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure database directory: %w", err)
		}
		return OpenSQLite(cfg.Path, opts...)
	case KindDiskv:
		return OpenDiskv(cfg.Path, opts...)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}
