package domain

import (
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// NormalizePath converts a relative path to the canonical form stored in manifests:
// forward slashes only, cleaned, without a leading "./".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}

// PathKey returns the case-folded comparison key of a path.
// Sorting, exclusion and symbol derivation all operate on this key.
func PathKey(p string) string {
	return strings.ToLower(NormalizePath(p))
}

// Manifest is the canonical, sorted list of resource-relative file paths to embed.
// Entries are comparison keys: the case-folded normalized path is what lands in
// the cache, the symbol name and the generated path table.
type Manifest struct {
	// Root is the absolute traversal start point.
	Root string
	// Excludes holds the comparison keys of excluded paths.
	Excludes map[string]struct{}

	entries []string
	onDisk  map[string]string
}

// NewManifest creates a manifest from the given relative paths.
// The paths are normalized, case-folded and sorted. Two paths sharing a
// comparison key would share a symbol, so they are rejected with ErrSymbolCollision.
func NewManifest(root string, excludes, paths []string) (*Manifest, error) {
	m := &Manifest{
		Root:     root,
		Excludes: make(map[string]struct{}, len(excludes)),
		onDisk:   make(map[string]string, len(paths)),
	}
	for _, e := range excludes {
		m.Excludes[PathKey(e)] = struct{}{}
	}

	entries := make([]string, 0, len(paths))
	for _, p := range paths {
		n := NormalizePath(p)
		if n == "" || m.IsExcluded(n) {
			continue
		}
		key := PathKey(n)
		other, dup := m.onDisk[key]
		if dup && other == n {
			continue
		}
		if dup {
			first, second := min(other, n), max(other, n)
			err := zerr.Wrap(ErrSymbolCollision, "paths differ only by case")
			err = zerr.With(err, "path", first)
			return nil, zerr.With(err, "other_path", second)
		}
		m.onDisk[key] = n
		entries = append(entries, key)
	}
	slices.Sort(entries)
	m.entries = entries

	return m, nil
}

// IsExcluded reports whether the path is in the exclusion set.
func (m *Manifest) IsExcluded(p string) bool {
	_, ok := m.Excludes[PathKey(p)]
	return ok
}

// Entries returns a copy of the ordered comparison keys.
func (m *Manifest) Entries() []string {
	return slices.Clone(m.entries)
}

// Index returns a copy of the mapping from comparison key to the path as spelled on disk.
func (m *Manifest) Index() map[string]string {
	return maps.Clone(m.onDisk)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Equal reports whether paths, taken as a set, lists exactly the manifest entries.
// Order and duplicates are ignored; a path spelled in another case is a difference.
func (m *Manifest) Equal(paths []string) bool {
	set := slices.Clone(paths)
	slices.Sort(set)
	return slices.Equal(m.entries, slices.Compact(set))
}

// ParseListing extracts paths from the text of a cache or exclusion-list file.
// Blank lines and lines starting with the comment marker are ignored. A path that
// is absolute or climbs out of the root fails with ErrUnsafePath.
func ParseListing(data []byte) ([]string, error) {
	var paths []string
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, CommentMarker) {
			continue
		}
		p := NormalizePath(line)
		if !IsLocalPath(p) {
			err := zerr.With(zerr.Wrap(ErrUnsafePath, "listing entry escapes the resource root"), "entry", line)
			return nil, zerr.With(err, "line", i+1)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// IsLocalPath reports whether a normalized path stays inside the directory it is
// relative to: it is not absolute, has no drive letter and does not start with "..".
func IsLocalPath(p string) bool {
	if p == "" || path.IsAbs(p) || (len(p) >= 2 && p[1] == ':') {
		return false
	}
	return filepath.IsLocal(filepath.FromSlash(p))
}
