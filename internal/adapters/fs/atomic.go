package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteAtomic writes a file by streaming into a temp file in the destination
// directory and renaming it over path once write succeeds. On any error the temp
// file is removed and path keeps its previous content.
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dir)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", dir)
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmpFile)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to flush temp file"), "path", tmpName)
	}
	if err := tmpFile.Sync(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to sync temp file"), "path", tmpName)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temp file"), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace file"), "path", path)
	}
	return nil
}
