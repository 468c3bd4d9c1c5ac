package ports

import (
	"context"

	"go.trai.ch/tasklist/internal/core/domain"
)

// TaskRepository is the durable slot the task store mirrors its collection into.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TaskRepository interface {
	// Load returns the stored collection in stored order.
	// found is false when the slot was never written.
	Load(ctx context.Context) (tasks []domain.Task, found bool, err error)

	// Save overwrites the slot with the full collection.
	Save(ctx context.Context, tasks []domain.Task) error

	// Close releases the underlying medium.
	Close() error
}

// RepositoryFactory opens the TaskRepository selected by the storage config.
type RepositoryFactory interface {
	Open(ctx context.Context, cfg domain.StorageConfig) (TaskRepository, error)
}
