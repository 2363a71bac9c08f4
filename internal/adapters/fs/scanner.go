package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestBuilder = (*Scanner)(nil)

// Scanner builds manifests from live directory scans.
type Scanner struct {
	walker *Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// ReadExcludes parses the exclusion-list file at path.
func (s *Scanner) ReadExcludes(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project config
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrExcludeListReadFailed.Error()), "path", path)
		return nil, domain.Classify(domain.ErrConfiguration, err)
	}
	excludes, err := domain.ParseListing(data)
	if err != nil {
		return nil, domain.Classify(domain.ErrConfiguration, zerr.With(err, "path", path))
	}
	return excludes, nil
}

// BuildManifest walks root and returns the sorted manifest of every regular file not excluded.
func (s *Scanner) BuildManifest(root string, excludes []string) (*domain.Manifest, error) {
	absRoot, paths, err := s.scan(root)
	if err != nil {
		return nil, err
	}
	return domain.NewManifest(absRoot, excludes, paths)
}

// LoadEntries resolves cached comparison keys to the files under root, matching
// case-insensitively. When two files share a key the first in walk order wins;
// BuildManifest reports that case as a collision.
func (s *Scanner) LoadEntries(root string, paths []string) ([]domain.Entry, error) {
	absRoot, found, err := s.scan(root)
	if err != nil {
		return nil, err
	}

	onDisk := make(map[string]string, len(found))
	for _, p := range found {
		key := domain.PathKey(p)
		if _, ok := onDisk[key]; !ok {
			onDisk[key] = p
		}
	}
	return domain.LoadEntries(absRoot, paths, onDisk), nil
}

// scan checks root and returns its absolute form with every file below it as a
// slash-separated relative path.
func (s *Scanner) scan(root string) (string, []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", nil, domain.Classify(domain.ErrConfiguration, zerr.With(zerr.Wrap(err, "invalid resource root"), "path", root))
	}

	info, err := os.Stat(absRoot)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		err = zerr.With(zerr.Wrap(domain.ErrRootNotFound, "cannot scan resources"), "path", absRoot)
		return "", nil, domain.Classify(domain.ErrConfiguration, err)
	case err != nil:
		err = zerr.With(zerr.Wrap(err, "failed to stat resource root"), "path", absRoot)
		return "", nil, domain.Classify(domain.ErrConfiguration, err)
	case !info.IsDir():
		err = zerr.With(zerr.Wrap(domain.ErrRootNotDirectory, "cannot scan resources"), "path", absRoot)
		return "", nil, domain.Classify(domain.ErrConfiguration, err)
	}

	var paths []string
	for path, walkErr := range s.walker.WalkFiles(absRoot) {
		if walkErr != nil {
			err := zerr.With(zerr.Wrap(walkErr, domain.ErrWalkFailed.Error()), "path", absRoot)
			return "", nil, domain.Classify(domain.ErrIO, err)
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return "", nil, domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path))
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return absRoot, paths, nil
}
