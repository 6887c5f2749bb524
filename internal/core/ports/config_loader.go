package ports

import "go.trai.ch/redo/internal/core/domain"

// ConfigLoader defines the interface for loading the redo configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration for the given working directory.
	// Defaults are returned when no config file exists.
	Load(cwd string) (*domain.Config, error)

	// LoadFile reads the configuration from an explicit path.
	LoadFile(path string) (*domain.Config, error)
}
