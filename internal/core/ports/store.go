package ports

import "go.trai.ch/rcpack/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build information.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for an archive under the given build directory.
	// Returns nil, nil if not found.
	Get(buildDir, archive string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(buildDir string, info domain.BuildInfo) error

	// Clear removes every stored record under the build directory.
	Clear(buildDir string) error
}
