package ports

import (
	"context"

	"go.trai.ch/rcpack/internal/core/domain"
)

// Emitter writes generated C sources for an archive.
//
//go:generate go run go.uber.org/mock/mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type Emitter interface {
	// Emit writes the archive unit for entries to spec.SourcePath, replacing it atomically.
	Emit(ctx context.Context, spec domain.ArchiveSpec, entries []domain.Entry) (*domain.ArchiveUnit, error)

	// EmitHeader writes the support header declaring the archive tables to path.
	EmitHeader(spec domain.ArchiveSpec, path string) error

	// ReadUnit decodes the unit previously written to spec.SourcePath.
	ReadUnit(spec domain.ArchiveSpec) (*domain.DecodedArchive, error)
}
