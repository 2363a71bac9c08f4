package ports

import (
	"context"

	"go.trai.ch/rcpack/internal/core/domain"
)

// Hasher defines the interface for computing content fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash fingerprints everything that determines the generated unit:
	// archive settings, entry paths and entry contents.
	ComputeInputHash(ctx context.Context, spec domain.ArchiveSpec, entries []domain.Entry) (string, error)

	// ComputeOutputHash fingerprints a generated artifact.
	ComputeOutputHash(path string) (string, error)

	// HashBytes fingerprints in-memory content the same way ComputeOutputHash fingerprints a file.
	HashBytes(data []byte) string
}
