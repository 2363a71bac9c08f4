package domain

import "path/filepath"

// Entry pairs a manifest path with the file it resolves to.
type Entry struct {
	// RelPath is the normalized path relative to the resource root.
	RelPath string
	// AbsPath is the location of the file on disk.
	AbsPath string
}

// ArchiveUnit describes the tables of one generated source unit.
// Index i of every slice refers to the same resource file.
type ArchiveUnit struct {
	FileCount int
	Sizes     []int
	Paths     []string
	Symbols   []string
}

// Aligned reports whether all tables have FileCount elements.
func (u *ArchiveUnit) Aligned() bool {
	return len(u.Sizes) == u.FileCount &&
		len(u.Paths) == u.FileCount &&
		len(u.Symbols) == u.FileCount
}

// ArchiveSpec is one configured archive with its resolved artifact paths.
type ArchiveSpec struct {
	Name         string
	Root         string
	ExcludeFile  string
	SymbolPrefix string
	Header       string

	CachePath   string
	SourcePath  string
	DepfilePath string
	HeaderPath  string
}

// DecodedFile is one resource recovered from a generated unit.
type DecodedFile struct {
	Path   string
	Symbol string
	Size   int
	Data   []byte
}

// DecodedArchive is the content of a generated unit read back from disk.
type DecodedArchive struct {
	Unit  ArchiveUnit
	Files []DecodedFile
}

// LoadEntries resolves manifest paths against root. RelPath is always the
// comparison key, so a unit emitted from the cache matches one emitted from a
// live scan. onDisk maps keys to their spelling on disk; keys it does not know
// resolve as written.
func LoadEntries(root string, paths []string, onDisk map[string]string) []Entry {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		key := PathKey(p)
		if key == "" {
			continue
		}
		disk, ok := onDisk[key]
		if !ok {
			disk = key
		}
		entries = append(entries, Entry{
			RelPath: key,
			AbsPath: filepath.Join(root, filepath.FromSlash(disk)),
		})
	}
	return entries
}
