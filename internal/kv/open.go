package kv

import (
	"fmt"

	"github.com/nissyi-gh/highstill/internal/config"
	"github.com/spf13/afero"
)

// Open returns the backend named by cfg.Backend.
func Open(cfg config.Storage) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLite(cfg.Path)
	case config.BackendFile:
		dir := cfg.Path
		if dir == "" {
			var err error
			if dir, err = DataDir(); err != nil {
				return nil, fmt.Errorf("determine data dir: %w", err)
			}
		}
		return NewFile(afero.NewOsFs(), dir)
	case config.BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
}
