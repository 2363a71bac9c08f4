package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of file system change.
type WatchOp int

const (
	// OpWrite indicates file content changed.
	OpWrite WatchOp = iota
	// OpCreate indicates a file or directory was created.
	OpCreate
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher observes directory trees for changes.
type Watcher interface {
	// Start watches every root recursively plus the listed individual files' directories.
	Start(ctx context.Context, roots []string) error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
	// Stop releases all resources.
	Stop() error
}
