package domain

import "path/filepath"

const (
	// ToolName is written into the header of every generated file.
	ToolName = "rcpack"

	// ConfigFileName is the default name of the project configuration file.
	ConfigFileName = "rcpack.yaml"

	// DefaultBuildDir is the build directory used when the config does not name one.
	DefaultBuildDir = "build"

	// SourceDirName is the directory under the build directory holding generated sources.
	SourceDirName = "src"

	// StateDirName is the name of the internal state directory under the build directory.
	StateDirName = ".rcpack"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// DefaultSymbolPrefix is the prefix of every generated C symbol.
	DefaultSymbolPrefix = "ce_resource_data"

	// DefaultHeaderName is the support header included by the generated unit.
	DefaultHeaderName = "ceresourcedata.h"

	// CommentMarker starts a comment line in cache and exclusion-list files.
	CommentMarker = ";"

	// BytesPerLine is the number of byte literals emitted per source line.
	BytesPerLine = 15

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// TimestampLayout formats the "Created:" line of generated headers.
	TimestampLayout = "02 Jan 2006 15:04:05"
)

// DefaultStorePath returns the build info store directory for the given build directory.
// It joins the build directory, .rcpack and store.
func DefaultStorePath(buildDir string) string {
	return filepath.Join(buildDir, StateDirName, StoreDirName)
}
