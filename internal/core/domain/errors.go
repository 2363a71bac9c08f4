package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned for a bad or missing resource root, exclusion list or config file.
	ErrConfiguration = zerr.New("configuration error")

	// ErrIO is returned when a resource cannot be read or an artifact cannot be written.
	ErrIO = zerr.New("i/o error")

	// ErrSymbolCollision is returned when two distinct paths map to the same generated symbol.
	ErrSymbolCollision = zerr.New("symbol collision")

	// ErrCorruptArchive is returned when a generated unit cannot be decoded or its tables disagree.
	ErrCorruptArchive = zerr.New("corrupt archive unit")

	// ErrArchiveNotFound is returned when a requested archive is not configured.
	ErrArchiveNotFound = zerr.New("archive not found")

	// ErrNoArchives is returned when the configuration declares no archives.
	ErrNoArchives = zerr.New("no archives configured")

	// ErrRootNotDirectory is returned when the resource root exists but is not a directory.
	ErrRootNotDirectory = zerr.New("resource root is not a directory")

	// ErrRootNotFound is returned when the resource root does not exist.
	ErrRootNotFound = zerr.New("resource root not found")

	// ErrExcludeListReadFailed is returned when the exclusion list cannot be read.
	ErrExcludeListReadFailed = zerr.New("failed to read exclusion list")

	// ErrConfigNotFound is returned when no config file is found in the directory or any parent.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName + " in this directory or any parent")

	// ErrMissingArchiveRoot is returned when an archive does not declare a resource root.
	ErrMissingArchiveRoot = zerr.New("archive root is required")

	// ErrUnsupportedVersion is returned when the config file declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported config version")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidArchiveName is returned when an archive name cannot be used in file and symbol names.
	ErrInvalidArchiveName = zerr.New("archive name can only contain alphanumeric characters, hyphens and underscores")

	// ErrInvalidSymbolPrefix is returned when a symbol prefix is not a valid C identifier.
	ErrInvalidSymbolPrefix = zerr.New("symbol prefix must be a valid C identifier")

	// ErrCacheReadFailed is returned when the manifest cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read manifest cache")

	// ErrCacheWriteFailed is returned when the manifest cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write manifest cache")

	// ErrUnsafePath is returned when a cache or exclusion-list entry is absolute or leaves the resource root.
	ErrUnsafePath = zerr.New("path is not inside the resource root")

	// ErrCacheMissing is returned when emission is requested from a cache that was never written.
	ErrCacheMissing = zerr.New("manifest cache not found, run the manifest step first")

	// ErrResourceReadFailed is returned when a resource file cannot be read.
	ErrResourceReadFailed = zerr.New("failed to read resource file")

	// ErrOutputWriteFailed is returned when a generated artifact cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write generated file")

	// ErrWalkFailed is returned when the resource tree cannot be traversed.
	ErrWalkFailed = zerr.New("failed to walk resource root")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrFileOpenFailed is returned when a file cannot be opened for hashing.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrArchiveStale is returned when a generated unit no longer matches the files it was built from.
	ErrArchiveStale = zerr.New("generated unit is out of date")

	// ErrBuildFailed is returned when the pipeline fails for at least one archive.
	ErrBuildFailed = zerr.New("build failed")
)

func archiveNotFound(name string) error {
	return zerr.With(zerr.Wrap(ErrArchiveNotFound, "unknown archive"), "archive", name)
}
