// Package emitter turns resource manifests into C source units and reads them back.
package emitter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Emitter = (*Emitter)(nil)

const sourceHeader = `/*
 *  Resource data
 *
 *  Created: %s
 *       by: %s
 *
 *  WARNING! All changes made in this file will be lost!
*/
`

const declHeader = `/*
 *  Resource data declarations
 *
 *  Created: %s
 *       by: %s
 *
 *  WARNING! All changes made in this file will be lost!
*/
`

// Emitter writes archive units as C source.
type Emitter struct {
	clock  domain.Clock
	symbol domain.SymbolFunc
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithSymbolFunc replaces the symbol derivation function.
func WithSymbolFunc(fn domain.SymbolFunc) Option {
	return func(e *Emitter) {
		e.symbol = fn
	}
}

// New creates a new Emitter stamping headers with the given clock.
func New(clock domain.Clock, opts ...Option) *Emitter {
	if clock == nil {
		clock = domain.SystemClock
	}
	e := &Emitter{
		clock:  clock,
		symbol: domain.SymbolName,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes the unit for entries to spec.SourcePath. The previous file is only
// replaced once every resource has been read and written successfully.
func (e *Emitter) Emit(ctx context.Context, spec domain.ArchiveSpec, entries []domain.Entry) (*domain.ArchiveUnit, error) {
	unit, err := e.plan(spec, entries)
	if err != nil {
		return nil, err
	}

	err = fs.WriteAtomic(spec.SourcePath, func(w io.Writer) error {
		return e.writeUnit(ctx, w, spec, entries, unit)
	})
	if err != nil {
		if errors.Is(err, domain.ErrIO) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", spec.SourcePath))
	}
	return unit, nil
}

// plan derives every symbol up front so collisions fail before any file is read.
func (e *Emitter) plan(spec domain.ArchiveSpec, entries []domain.Entry) (*domain.ArchiveUnit, error) {
	unit := &domain.ArchiveUnit{
		FileCount: len(entries),
		Sizes:     make([]int, len(entries)),
		Paths:     make([]string, len(entries)),
		Symbols:   make([]string, len(entries)),
	}

	owners := make(map[string]string, len(entries))
	for i, entry := range entries {
		sym := e.symbol(spec.SymbolPrefix, entry.RelPath)
		if other, ok := owners[sym]; ok {
			err := zerr.Wrap(domain.ErrSymbolCollision, "two resources map to one symbol")
			err = zerr.With(err, "symbol", sym)
			err = zerr.With(err, "path", other)
			return nil, zerr.With(err, "other_path", entry.RelPath)
		}
		owners[sym] = entry.RelPath
		unit.Paths[i] = entry.RelPath
		unit.Symbols[i] = sym
	}
	return unit, nil
}

func (e *Emitter) writeUnit(
	ctx context.Context,
	w io.Writer,
	spec domain.ArchiveSpec,
	entries []domain.Entry,
	unit *domain.ArchiveUnit,
) error {
	if _, err := fmt.Fprintf(w, sourceHeader, e.timestamp(), domain.ToolName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n#include \"%s\"\n", spec.Header); err != nil {
		return err
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		size, err := writeArray(w, unit.Symbols[i], entry.AbsPath)
		if err != nil {
			return err
		}
		unit.Sizes[i] = size
	}

	return writeTables(w, spec.SymbolPrefix, unit)
}

// writeArray streams one resource as a byte array, BytesPerLine literals per line.
func writeArray(w io.Writer, symbol, path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the manifest
	if err != nil {
		return 0, readError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only

	if _, err := fmt.Fprintf(w, "\nstatic const unsigned char %s[] = {\n", symbol); err != nil {
		return 0, err
	}

	r := bufio.NewReader(f)
	chunk := make([]byte, domain.BytesPerLine)
	line := make([]byte, 0, domain.BytesPerLine*5+3)
	size := 0

	for {
		n, err := io.ReadFull(r, chunk)
		if n > 0 {
			size += n
			if _, werr := w.Write(appendLine(line[:0], chunk[:n])); werr != nil {
				return 0, werr
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return 0, readError(err, path)
		}
	}

	// ISO C forbids empty initializers; the size table still records 0.
	if size == 0 {
		if _, err := io.WriteString(w, "\t0x0,\n"); err != nil {
			return 0, err
		}
	}

	_, err = io.WriteString(w, "};\n")
	return size, err
}

func appendLine(dst, data []byte) []byte {
	dst = append(dst, '\t')
	for i, b := range data {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '0', 'x')
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return append(dst, ',', '\n')
}

func writeTables(w io.Writer, prefix string, unit *domain.ArchiveUnit) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nconst size_t %s = %d;\n", domain.CountSymbol(prefix), unit.FileCount)

	fmt.Fprintf(&b, "\nconst size_t %s[] = {\n", domain.SizesSymbol(prefix))
	for _, size := range unit.Sizes {
		fmt.Fprintf(&b, "\t%d,\n", size)
	}
	b.WriteString("};\n")

	fmt.Fprintf(&b, "\nconst char* %s[] = {\n", domain.PathsSymbol(prefix))
	for _, path := range unit.Paths {
		fmt.Fprintf(&b, "\t%s,\n", QuoteC(path))
	}
	b.WriteString("};\n")

	fmt.Fprintf(&b, "\nconst unsigned char* %s[] = {\n", prefix)
	for _, sym := range unit.Symbols {
		fmt.Fprintf(&b, "\t%s,\n", sym)
	}
	b.WriteString("};\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// EmitHeader writes the support header declaring the archive tables.
func (e *Emitter) EmitHeader(spec domain.ArchiveSpec, path string) error {
	guard := headerGuard(filepath.Base(path))
	prefix := spec.SymbolPrefix

	err := fs.WriteAtomic(path, func(w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, declHeader, e.timestamp(), domain.ToolName)
		fmt.Fprintf(&b, "\n#ifndef %s\n#define %s\n", guard, guard)
		b.WriteString("\n#include <stddef.h>\n")
		b.WriteString("\n#ifdef __cplusplus\nextern \"C\" {\n#endif\n")
		fmt.Fprintf(&b, "\nextern const size_t %s;\n", domain.CountSymbol(prefix))
		fmt.Fprintf(&b, "extern const size_t %s[];\n", domain.SizesSymbol(prefix))
		fmt.Fprintf(&b, "extern const char* %s[];\n", domain.PathsSymbol(prefix))
		fmt.Fprintf(&b, "extern const unsigned char* %s[];\n", prefix)
		b.WriteString("\n#ifdef __cplusplus\n}\n#endif\n")
		fmt.Fprintf(&b, "\n#endif /* %s */\n", guard)
		_, err := io.WriteString(w, b.String())
		return err
	})
	if err != nil {
		return domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path))
	}
	return nil
}

func (e *Emitter) timestamp() string {
	return e.clock().Format(domain.TimestampLayout)
}

func headerGuard(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

func readError(err error, path string) error {
	return domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "path", path))
}
