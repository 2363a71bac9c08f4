package emitter

import (
	"bufio"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	arrayOpen   = regexp.MustCompile(`^static const unsigned char ([A-Za-z_][A-Za-z0-9_]*)\[\] = \{$`)
	countLine   = regexp.MustCompile(`^const size_t ([A-Za-z_][A-Za-z0-9_]*) = ([0-9]+);$`)
	sizesOpen   = regexp.MustCompile(`^const size_t ([A-Za-z_][A-Za-z0-9_]*)\[\] = \{$`)
	pathsOpen   = regexp.MustCompile(`^const char\* ([A-Za-z_][A-Za-z0-9_]*)\[\] = \{$`)
	pointerOpen = regexp.MustCompile(`^const unsigned char\* ([A-Za-z_][A-Za-z0-9_]*)\[\] = \{$`)
)

type tableKind int

const (
	tableNone tableKind = iota
	tableArray
	tableSizes
	tablePaths
	tablePointers
)

type decoder struct {
	prefix string

	arrays   map[string][]byte
	count    int
	hasCount bool
	sizes    []int
	paths    []string
	pointers []string

	kind    tableKind
	current string
	lineNo  int
}

// ReadUnit decodes the unit at spec.SourcePath.
func (e *Emitter) ReadUnit(spec domain.ArchiveSpec) (*domain.DecodedArchive, error) {
	f, err := os.Open(spec.SourcePath)
	if err != nil {
		kind := domain.ErrIO
		if errors.Is(err, iofs.ErrNotExist) {
			kind = domain.ErrConfiguration
		}
		return nil, domain.Classify(kind, zerr.With(zerr.Wrap(err, "failed to open archive unit"), "path", spec.SourcePath))
	}
	defer f.Close() //nolint:errcheck // read-only

	decoded, err := Decode(f, spec.SymbolPrefix)
	if err != nil {
		return nil, zerr.With(err, "path", spec.SourcePath)
	}
	return decoded, nil
}

// Decode parses a unit produced by Emit back into its tables and file contents.
// Tables that disagree in length, or pointers to undeclared arrays, fail with
// ErrCorruptArchive.
func Decode(r io.Reader, prefix string) (*domain.DecodedArchive, error) {
	d := &decoder{prefix: prefix, arrays: make(map[string][]byte)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		d.lineNo++
		if err := d.line(strings.TrimRight(sc.Text(), "\r")); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, domain.Classify(domain.ErrIO, zerr.Wrap(err, "failed to read archive unit"))
	}
	if d.kind != tableNone {
		return nil, d.corrupt("unterminated table")
	}
	return d.assemble()
}

func (d *decoder) line(line string) error {
	if d.kind != tableNone {
		if line == "};" {
			d.kind = tableNone
			return nil
		}
		return d.element(strings.TrimSpace(line))
	}

	switch {
	case line == "":
		return nil
	case arrayOpen.MatchString(line):
		name := arrayOpen.FindStringSubmatch(line)[1]
		if _, dup := d.arrays[name]; dup {
			return d.corrupt("duplicate byte array " + name)
		}
		d.arrays[name] = []byte{}
		d.kind, d.current = tableArray, name
	case countLine.MatchString(line):
		m := countLine.FindStringSubmatch(line)
		if m[1] != domain.CountSymbol(d.prefix) {
			return d.corrupt("unexpected count symbol " + m[1])
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return d.corrupt("bad file count")
		}
		d.count, d.hasCount = n, true
	case sizesOpen.MatchString(line):
		if err := d.expect(sizesOpen, line, domain.SizesSymbol(d.prefix)); err != nil {
			return err
		}
		d.kind = tableSizes
	case pathsOpen.MatchString(line):
		if err := d.expect(pathsOpen, line, domain.PathsSymbol(d.prefix)); err != nil {
			return err
		}
		d.kind = tablePaths
	case pointerOpen.MatchString(line):
		if err := d.expect(pointerOpen, line, d.prefix); err != nil {
			return err
		}
		d.kind = tablePointers
	}
	// Comments, the include line and anything else outside a table are ignored.
	return nil
}

func (d *decoder) expect(re *regexp.Regexp, line, want string) error {
	if got := re.FindStringSubmatch(line)[1]; got != want {
		return d.corrupt("unexpected table " + got)
	}
	return nil
}

func (d *decoder) element(body string) error {
	body = strings.TrimSuffix(body, ",")
	switch d.kind {
	case tableArray:
		buf := d.arrays[d.current]
		for tok := range strings.SplitSeq(body, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(tok), 0, 8)
			if err != nil {
				return d.corrupt("bad byte literal " + tok)
			}
			buf = append(buf, byte(v))
		}
		d.arrays[d.current] = buf
	case tableSizes:
		n, err := strconv.Atoi(body)
		if err != nil || n < 0 {
			return d.corrupt("bad size " + body)
		}
		d.sizes = append(d.sizes, n)
	case tablePaths:
		p, err := UnquoteC(body)
		if err != nil {
			return err
		}
		d.paths = append(d.paths, p)
	case tablePointers:
		d.pointers = append(d.pointers, body)
	case tableNone:
	}
	return nil
}

func (d *decoder) assemble() (*domain.DecodedArchive, error) {
	if !d.hasCount {
		return nil, d.corrupt("missing file count")
	}

	unit := domain.ArchiveUnit{
		FileCount: d.count,
		Sizes:     d.sizes,
		Paths:     d.paths,
		Symbols:   d.pointers,
	}
	if !unit.Aligned() {
		err := zerr.Wrap(domain.ErrCorruptArchive, "tables are not index-aligned")
		err = zerr.With(err, "count", d.count)
		err = zerr.With(err, "sizes", len(d.sizes))
		err = zerr.With(err, "paths", len(d.paths))
		return nil, zerr.With(err, "pointers", len(d.pointers))
	}

	files := make([]domain.DecodedFile, d.count)
	for i, sym := range d.pointers {
		data, ok := d.arrays[sym]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "pointer to undeclared array"), "symbol", sym)
		}
		size := d.sizes[i]
		switch {
		case size == 0 && len(data) <= 1:
			data = nil
		case len(data) != size:
			err := zerr.Wrap(domain.ErrCorruptArchive, "array length does not match size table")
			err = zerr.With(err, "symbol", sym)
			err = zerr.With(err, "size", size)
			return nil, zerr.With(err, "length", len(data))
		}
		files[i] = domain.DecodedFile{
			Path:   d.paths[i],
			Symbol: sym,
			Size:   size,
			Data:   data,
		}
	}

	return &domain.DecodedArchive{Unit: unit, Files: files}, nil
}

func (d *decoder) corrupt(msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrCorruptArchive, msg), "line", d.lineNo)
}
