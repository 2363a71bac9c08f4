package fs

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides content fingerprints for archives and generated files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash over the archive settings that shape
// the generated unit and over every entry's path and content.
// File contents are hashed concurrently; the fold over them follows entry order.
func (h *Hasher) ComputeInputHash(ctx context.Context, spec domain.ArchiveSpec, entries []domain.Entry) (string, error) {
	sums := make([]uint64, len(entries))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, entry := range entries {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			sum, err := h.ComputeFileHash(entry.AbsPath)
			if err != nil {
				return domain.Classify(domain.ErrIO, err)
			}
			sums[i] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	hasher := xxhash.New()
	h.hashSpec(spec, hasher)

	for i, entry := range entries {
		_, _ = hasher.WriteString(entry.RelPath)
		_, _ = hasher.Write([]byte{0})
		if err := binary.Write(hasher, binary.LittleEndian, sums[i]); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashSpec hashes the settings that appear in the generated unit.
func (h *Hasher) hashSpec(spec domain.ArchiveSpec, hasher *xxhash.Digest) {
	for _, field := range []string{spec.SymbolPrefix, spec.Header} {
		_, _ = hasher.WriteString(field)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

// ComputeOutputHash computes the hash of a generated file.
func (h *Hasher) ComputeOutputHash(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(iofs.ErrNotExist, "output file missing"), "path", path)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
	}

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}

// HashBytes computes the hash of in-memory content in the ComputeOutputHash format.
func (h *Hasher) HashBytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
