// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/rcpack/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and resolves every archive's artifact paths.
	Load(path string) (*domain.Config, error)

	// Find returns the nearest configuration file in dir or one of its parents.
	Find(dir string) (string, error)
}
