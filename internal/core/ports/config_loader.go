package ports

import "go.trai.ch/tasklist/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// An explicit path overrides discovery; a missing default file yields defaults.
	Load(cwd, path string) (domain.Config, error)
}
