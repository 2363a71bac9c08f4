package ports

import "go.trai.ch/rcpack/internal/core/domain"

// ManifestCache persists manifests so build up-to-date checks can key off a single file.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ManifestCache interface {
	// Sync rewrites the cache at path when its path list differs from the manifest.
	// It reports whether the file was written.
	Sync(manifest *domain.Manifest, path string) (bool, error)

	// Read returns the path list stored in the cache at path.
	Read(path string) ([]string, error)
}
