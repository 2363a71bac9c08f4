package ports

import "go.trai.ch/rcpack/internal/core/domain"

// DepfileWriter declares the dependency edges of a generated unit to the surrounding build system.
//
//go:generate go run go.uber.org/mock/mockgen -source=depfile.go -destination=mocks/mock_depfile.go -package=mocks
type DepfileWriter interface {
	// Write records that spec.SourcePath depends on the cache file and every entry.
	Write(spec domain.ArchiveSpec, entries []domain.Entry) error
}
