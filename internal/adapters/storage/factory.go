// Package storage opens the persistence backend named in the configuration.
package storage

import (
	"context"

	"go.trai.ch/tasklist/internal/adapters/jsonstore"
	"go.trai.ch/tasklist/internal/adapters/sqlite"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory implements ports.RepositoryFactory.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open returns the repository for cfg.Backend.
func (f *Factory) Open(ctx context.Context, cfg domain.StorageConfig) (ports.TaskRepository, error) {
	switch cfg.Backend {
	case domain.BackendFile:
		return jsonstore.New(cfg.Dir, cfg.Key), nil
	case domain.BackendSQLite:
		repo, err := sqlite.Open(ctx, domain.SQLitePath(cfg.Dir), cfg.Key)
		if err != nil {
			return nil, zerr.With(err, "backend", string(cfg.Backend))
		}
		return repo, nil
	default:
		return nil, zerr.With(domain.ErrUnknownBackend, "backend", string(cfg.Backend))
	}
}
