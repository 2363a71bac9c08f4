package ports

import "go.trai.ch/rcpack/internal/core/domain"

// ManifestBuilder produces the canonical manifest of a resource root.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type ManifestBuilder interface {
	// ReadExcludes parses the exclusion-list file at path. An empty path yields no exclusions.
	ReadExcludes(path string) ([]string, error)

	// BuildManifest walks root and returns every regular file not in excludes,
	// sorted by comparison key.
	BuildManifest(root string, excludes []string) (*domain.Manifest, error)

	// LoadEntries resolves cached paths to the files under root, ignoring case.
	LoadEntries(root string, paths []string) ([]domain.Entry, error)
}
