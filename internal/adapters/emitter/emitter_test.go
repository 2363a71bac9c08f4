package emitter_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rcpack/internal/adapters/emitter"
	"go.trai.ch/rcpack/internal/core/domain"
)

var fixedTime = time.Date(2026, time.October, 19, 12, 30, 45, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	}
}

func testSpec(dir string) domain.ArchiveSpec {
	return domain.ArchiveSpec{
		Name:         "resources",
		Root:         filepath.Join(dir, "data"),
		SymbolPrefix: domain.DefaultSymbolPrefix,
		Header:       domain.DefaultHeaderName,
		SourcePath:   filepath.Join(dir, "build", "src", "resources_data.c"),
		HeaderPath:   filepath.Join(dir, "build", "src", domain.DefaultHeaderName),
	}
}

func entriesFor(t *testing.T, spec domain.ArchiveSpec, paths ...string) []domain.Entry {
	t.Helper()
	m, err := domain.NewManifest(spec.Root, nil, paths)
	require.NoError(t, err)
	return domain.LoadEntries(spec.Root, m.Entries(), m.Index())
}

func binaryFixture() string {
	var b strings.Builder
	for i := range 20 {
		b.WriteByte(byte(i))
	}
	return b.String()
}

func TestEmitter_Emit_Golden(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{
		"a/x.txt":          "abc",
		"b/data.bin":       binaryFixture(),
		"Docs/Read Me.txt": "hi\n",
		"empty.txt":        "",
	})

	e := emitter.New(fixedClock)
	unit, err := e.Emit(context.Background(), spec,
		entriesFor(t, spec, "empty.txt", "b/data.bin", "Docs/Read Me.txt", "a/x.txt"))
	require.NoError(t, err)

	assert.True(t, unit.Aligned())
	assert.Equal(t, 4, unit.FileCount)
	assert.Equal(t, []int{3, 20, 3, 0}, unit.Sizes)
	assert.Equal(t, []string{"a/x.txt", "b/data.bin", "docs/read me.txt", "empty.txt"}, unit.Paths)

	data, err := os.ReadFile(spec.SourcePath)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "resources_data.c", data)
}

func TestEmitter_Emit_ExcludedFileScenario(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{
		"a/x.txt": "abc",
		"a/y.txt": "skip me",
	})

	m, err := domain.NewManifest(spec.Root, []string{"a/y.txt"}, []string{"a/x.txt", "a/y.txt"})
	require.NoError(t, err)

	unit, err := emitter.New(fixedClock).Emit(context.Background(), spec, domain.LoadEntries(spec.Root, m.Entries(), m.Index()))
	require.NoError(t, err)

	assert.Equal(t, 1, unit.FileCount)
	assert.Equal(t, []int{3}, unit.Sizes)
	assert.Equal(t, []string{"ce_resource_data_e5a357177b14606beada1dcda18005bc"}, unit.Symbols)

	data, err := os.ReadFile(spec.SourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "const size_t CE_RESOURCE_DATA_COUNT = 1;")
	assert.Contains(t, string(data), "\t0x61,0x62,0x63,\n")
	assert.NotContains(t, string(data), "a/y.txt")
}

func TestEmitter_Emit_Deterministic(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{
		"z.txt":     "last",
		"m/a.txt":   "middle",
		"B/c.bin":   "\x00\xff",
		"a/long.md": strings.Repeat("x", 100),
	})

	e := emitter.New(fixedClock)
	paths := []string{"z.txt", "m/a.txt", "B/c.bin", "a/long.md"}

	_, err := e.Emit(context.Background(), spec, entriesFor(t, spec, paths...))
	require.NoError(t, err)
	first, err := os.ReadFile(spec.SourcePath)
	require.NoError(t, err)

	reversed := []string{"a/long.md", "B/c.bin", "m/a.txt", "z.txt"}
	_, err = e.Emit(context.Background(), spec, entriesFor(t, spec, reversed...))
	require.NoError(t, err)
	second, err := os.ReadFile(spec.SourcePath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmitter_Emit_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	files := map[string]string{
		"a/x.txt":          "abc",
		"b/data.bin":       binaryFixture(),
		"exactly15.bin":    strings.Repeat("\x7f", domain.BytesPerLine),
		"quote\"s.txt":     "q",
		"Docs/Read Me.txt": "hi\n",
		"empty.txt":        "",
	}
	writeTree(t, spec.Root, files)

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}

	unit, err := emitter.New(fixedClock).Emit(context.Background(), spec, entriesFor(t, spec, paths...))
	require.NoError(t, err)

	f, err := os.Open(spec.SourcePath)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := emitter.Decode(f, spec.SymbolPrefix)
	require.NoError(t, err)

	assert.Equal(t, *unit, decoded.Unit)
	byKey := make(map[string]string, len(files))
	for p, content := range files {
		byKey[domain.PathKey(p)] = content
	}

	require.Len(t, decoded.Files, len(files))
	for i, file := range decoded.Files {
		assert.Equal(t, unit.Paths[i], file.Path)
		assert.Equal(t, unit.Symbols[i], file.Symbol)
		assert.Equal(t, byKey[file.Path], string(file.Data), "content of %s", file.Path)
		assert.Equal(t, len(byKey[file.Path]), file.Size)
	}
}

func TestEmitter_Emit_SymbolCollision(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{"a.txt": "a", "b.txt": "b"})

	constant := func(prefix, _ string) string { return prefix + "_same" }
	e := emitter.New(fixedClock, emitter.WithSymbolFunc(constant))

	_, err := e.Emit(context.Background(), spec, entriesFor(t, spec, "a.txt", "b.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSymbolCollision))

	_, statErr := os.Stat(spec.SourcePath)
	assert.True(t, os.IsNotExist(statErr), "no output is written on collision")
}

func TestEmitter_Emit_UnreadableSourceKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{"a.txt": "a"})

	previous := []byte("/* previous unit */\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(spec.SourcePath), domain.DirPerm))
	require.NoError(t, os.WriteFile(spec.SourcePath, previous, domain.PrivateFilePerm))

	_, err := emitter.New(fixedClock).Emit(context.Background(), spec, entriesFor(t, spec, "a.txt", "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIO))

	data, err := os.ReadFile(spec.SourcePath)
	require.NoError(t, err)
	assert.Equal(t, previous, data)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(spec.SourcePath), ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestEmitter_Emit_Cancelled(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	writeTree(t, spec.Root, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := emitter.New(fixedClock).Emit(ctx, spec, entriesFor(t, spec, "a.txt"))
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(spec.SourcePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmitter_EmitHeader_Golden(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)

	require.NoError(t, emitter.New(fixedClock).EmitHeader(spec, spec.HeaderPath))

	data, err := os.ReadFile(spec.HeaderPath)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "ceresourcedata.h", data)
}

func TestQuoteC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/x.txt", `"a/x.txt"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"what??=", `"what\?\?="`},
		{"tab\there", `"tab\011here"`},
		{"caf\xc3\xa9", `"caf\303\251"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := emitter.QuoteC(tt.in)
			assert.Equal(t, tt.want, got)

			back, err := emitter.UnquoteC(got)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "missing count",
			src:  "static const unsigned char p_a[] = {\n\t0x1,\n};\n",
		},
		{
			name: "misaligned tables",
			src: "static const unsigned char p_a[] = {\n\t0x1,\n};\n" +
				"const size_t P_COUNT = 2;\n" +
				"const size_t p_sizes[] = {\n\t1,\n};\n" +
				"const char* p_paths[] = {\n\t\"a\",\n};\n" +
				"const unsigned char* p[] = {\n\tp_a,\n};\n",
		},
		{
			name: "undeclared array",
			src: "const size_t P_COUNT = 1;\n" +
				"const size_t p_sizes[] = {\n\t1,\n};\n" +
				"const char* p_paths[] = {\n\t\"a\",\n};\n" +
				"const unsigned char* p[] = {\n\tp_missing,\n};\n",
		},
		{
			name: "size mismatch",
			src: "static const unsigned char p_a[] = {\n\t0x1,0x2,\n};\n" +
				"const size_t P_COUNT = 1;\n" +
				"const size_t p_sizes[] = {\n\t1,\n};\n" +
				"const char* p_paths[] = {\n\t\"a\",\n};\n" +
				"const unsigned char* p[] = {\n\tp_a,\n};\n",
		},
		{
			name: "bad literal",
			src:  "static const unsigned char p_a[] = {\n\t0x1ff,\n};\n",
		},
		{
			name: "unterminated",
			src:  "static const unsigned char p_a[] = {\n\t0x1,\n",
		},
		{
			name: "wrong prefix",
			src:  "const size_t OTHER_COUNT = 0;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := emitter.Decode(bytes.NewBufferString(tt.src), "p")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCorruptArchive), "got %v", err)
		})
	}
}

func TestDecode_EmptyArchive(t *testing.T) {
	src := "const size_t P_COUNT = 0;\n" +
		"const size_t p_sizes[] = {\n};\n" +
		"const char* p_paths[] = {\n};\n" +
		"const unsigned char* p[] = {\n};\n"

	decoded, err := emitter.Decode(bytes.NewBufferString(src), "p")
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Unit.FileCount)
	assert.Empty(t, decoded.Files)
}

func TestEmitter_ReadUnit(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec(dir)
	e := emitter.New(fixedClock)

	_, err := e.ReadUnit(spec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	writeTree(t, spec.Root, map[string]string{"a/x.txt": "abc"})
	unit, err := e.Emit(context.Background(), spec, entriesFor(t, spec, "a/x.txt"))
	require.NoError(t, err)

	decoded, err := e.ReadUnit(spec)
	require.NoError(t, err)
	assert.Equal(t, *unit, decoded.Unit)
	assert.Equal(t, "abc", string(decoded.Files[0].Data))
}
