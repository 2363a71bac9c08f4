// Package manifest persists resource manifests as human-editable cache files.
package manifest

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"strings"

	"go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestCache = (*Cache)(nil)

const cacheHeader = `;  Resource cache
;
;  Created: %s
;       by: %s
;
;  WARNING! All changes made in this file will be lost!
`

// Cache reads and writes manifest cache files.
//
// The cache file's modification time is what downstream up-to-date checks key
// off, so Sync leaves the file alone unless its path list actually changed.
type Cache struct {
	clock domain.Clock
}

// NewCache creates a new Cache stamping headers with the given clock.
func NewCache(clock domain.Clock) *Cache {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Cache{clock: clock}
}

// Read returns the path list stored in the cache file at path.
func (c *Cache) Read(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project config
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.Classify(domain.ErrConfiguration, zerr.With(zerr.Wrap(err, domain.ErrCacheMissing.Error()), "path", path))
		}
		return nil, domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path))
	}
	paths, err := domain.ParseListing(data)
	if err != nil {
		return nil, domain.Classify(domain.ErrConfiguration, zerr.With(err, "path", path))
	}
	return paths, nil
}

// Sync rewrites the cache file when its set of paths differs from the manifest's
// entries or when it does not exist yet. It reports whether the file was written.
func (c *Cache) Sync(m *domain.Manifest, path string) (bool, error) {
	existing, err := c.Read(path)
	switch {
	case err == nil:
		if m.Equal(existing) {
			return false, nil
		}
	case errors.Is(err, iofs.ErrNotExist):
		// First build: create it.
	case errors.Is(err, domain.ErrUnsafePath):
		// The manifest is authoritative; replace the tampered file.
	default:
		return false, err
	}

	if err := fs.WriteAtomic(path, func(w io.Writer) error {
		return c.write(w, m.Entries())
	}); err != nil {
		return false, domain.Classify(domain.ErrIO, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()))
	}
	return true, nil
}

func (c *Cache) write(w io.Writer, paths []string) error {
	if _, err := fmt.Fprintf(w, cacheHeader, c.clock().Format(domain.TimestampLayout), domain.ToolName); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n"+strings.Join(paths, "\n")+"\n")
	return err
}
