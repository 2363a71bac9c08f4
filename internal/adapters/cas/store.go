// Package cas implements the per-archive build info store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	rcfs "go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using a file-per-archive strategy.
type Store struct{}

// NewStore creates a new BuildInfoStore. The store directory is derived from the
// build directory passed to each call.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build info for an archive.
func (s *Store) Get(buildDir, archive string) (*domain.BuildInfo, error) {
	filename := s.filename(buildDir, archive)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "archive", archive)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "archive", archive)
	}

	return &info, nil
}

// Put stores the build info, replacing any previous record for the archive.
func (s *Store) Put(buildDir string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(buildDir, info.Archive)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	if err := rcfs.WriteAtomic(filename, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "archive", info.Archive)
	}

	return nil
}

// Clear removes the whole state directory under buildDir.
func (s *Store) Clear(buildDir string) error {
	if err := os.RemoveAll(filepath.Join(buildDir, domain.StateDirName)); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(buildDir, archive string) string {
	hash := sha256.Sum256([]byte(archive))
	return filepath.Join(domain.DefaultStorePath(buildDir), hex.EncodeToString(hash[:])+".json")
}
