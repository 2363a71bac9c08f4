// Package depfile writes Make-format dependency files for generated units.
package depfile

import (
	"io"
	"strings"

	"go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DepfileWriter = (*Writer)(nil)

// Writer emits depfiles naming the cache file and every resource as prerequisites
// of the generated source. Each resource also gets an empty rule so a deleted file
// does not break the next make run.
type Writer struct{}

// NewWriter creates a new depfile Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes the depfile for spec to spec.DepfilePath.
func (w *Writer) Write(spec domain.ArchiveSpec, entries []domain.Entry) error {
	err := fs.WriteAtomic(spec.DepfilePath, func(out io.Writer) error {
		_, err := io.WriteString(out, Render(spec, entries))
		return err
	})
	if err != nil {
		return domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", spec.DepfilePath))
	}
	return nil
}

// Render returns the depfile content.
func Render(spec domain.ArchiveSpec, entries []domain.Entry) string {
	var b strings.Builder

	b.WriteString(Escape(spec.SourcePath))
	b.WriteString(":")
	if spec.CachePath != "" {
		b.WriteString(" ")
		b.WriteString(Escape(spec.CachePath))
	}
	for _, e := range entries {
		b.WriteString(" \\\n  ")
		b.WriteString(Escape(e.AbsPath))
	}
	b.WriteString("\n")

	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(Escape(e.AbsPath))
		b.WriteString(":\n")
	}
	return b.String()
}

// Escape quotes a path for use in a Make rule.
func Escape(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case ' ', '#', ':':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '$':
			b.WriteString("$$")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
