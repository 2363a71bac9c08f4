package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/core/domain"
)

// writeTree creates files (relative slash paths) with the given contents under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"README.md":        "# Readme",
		"src/main.c":       "int main;",
		"src/deep/x/y.bin": "\x00\x01",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), domain.DirPerm))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "README.md"), filepath.Join(tmpDir, "link.md")))

	walker := fs.NewWalker()

	var files []string
	for path, err := range walker.WalkFiles(tmpDir) {
		require.NoError(t, err)
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files = append(files, filepath.ToSlash(rel))
	}
	sort.Strings(files)

	assert.Equal(t, []string{"README.md", "src/deep/x/y.bin", "src/main.c"}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()

	var gotErr error
	for _, err := range walker.WalkFiles(filepath.Join(t.TempDir(), "missing")) {
		gotErr = err
	}
	require.Error(t, gotErr)
}

func TestScanner_BuildManifest(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"a/x.txt":       "abc",
		"a/y.txt":       "",
		"B/Font.ttf":    "font",
		"shaders/z.vsh": "void main(){}",
	})

	scanner := fs.NewScanner(fs.NewWalker())

	m, err := scanner.BuildManifest(tmpDir, []string{"a/y.txt", "not/on/disk"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/x.txt", "b/font.ttf", "shaders/z.vsh"}, m.Entries())
	assert.Equal(t, "B/Font.ttf", m.Index()["b/font.ttf"])
	assert.Equal(t, tmpDir, m.Root)
}

func TestScanner_BuildManifest_FoldsCase(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"Data/Foo.TXT": "foo",
		"a/x.txt":      "abc",
	})

	scanner := fs.NewScanner(fs.NewWalker())

	m, err := scanner.BuildManifest(tmpDir, []string{"A/X.TXT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data/foo.txt"}, m.Entries())

	entries := domain.LoadEntries(tmpDir, m.Entries(), m.Index())
	require.Len(t, entries, 1)
	assert.Equal(t, "data/foo.txt", entries[0].RelPath)
	assert.Equal(t, filepath.Join(tmpDir, "Data", "Foo.TXT"), entries[0].AbsPath)
}

func TestScanner_LoadEntries(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"Data/Foo.TXT": "foo",
		"a/x.txt":      "abc",
	})

	scanner := fs.NewScanner(fs.NewWalker())

	entries, err := scanner.LoadEntries(tmpDir, []string{"data/foo.txt", "a/x.txt", "gone.bin"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{RelPath: "data/foo.txt", AbsPath: filepath.Join(tmpDir, "Data", "Foo.TXT")},
		{RelPath: "a/x.txt", AbsPath: filepath.Join(tmpDir, "a", "x.txt")},
		{RelPath: "gone.bin", AbsPath: filepath.Join(tmpDir, "gone.bin")},
	}, entries)

	_, err = scanner.LoadEntries(filepath.Join(tmpDir, "missing"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRootNotFound))
}

func TestScanner_BuildManifest_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"z.bin": "z", "m/n.bin": "n", "a.bin": "a", "M/o.bin": "o",
	})

	scanner := fs.NewScanner(fs.NewWalker())

	first, err := scanner.BuildManifest(tmpDir, nil)
	require.NoError(t, err)
	second, err := scanner.BuildManifest(tmpDir, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, []string{"a.bin", "m/n.bin", "m/o.bin", "z.bin"}, first.Entries())
}

func TestScanner_BuildManifest_CaseCollision(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"a/X.txt": "1"})

	// Only meaningful on case-sensitive file systems.
	if _, err := os.Stat(filepath.Join(tmpDir, "a", "x.txt")); err == nil {
		t.Skip("case-insensitive file system")
	}
	writeTree(t, tmpDir, map[string]string{"a/x.txt": "2"})

	scanner := fs.NewScanner(fs.NewWalker())
	_, err := scanner.BuildManifest(tmpDir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSymbolCollision))
}

func TestScanner_BuildManifest_BadRoot(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), domain.PrivateFilePerm))

	scanner := fs.NewScanner(fs.NewWalker())

	t.Run("missing", func(t *testing.T) {
		_, err := scanner.BuildManifest(filepath.Join(tmpDir, "missing"), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
		assert.True(t, errors.Is(err, domain.ErrRootNotFound))
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := scanner.BuildManifest(file, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
		assert.True(t, errors.Is(err, domain.ErrRootNotDirectory))
	})
}

func TestScanner_ReadExcludes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resources.cerc")
	content := "; excluded from the archive\n\na/y.txt\r\nshaders\\old.vsh\n;a/x.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))

	scanner := fs.NewScanner(fs.NewWalker())

	excludes, err := scanner.ReadExcludes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/y.txt", "shaders/old.vsh"}, excludes)

	none, err := scanner.ReadExcludes("")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = scanner.ReadExcludes(filepath.Join(tmpDir, "missing.cerc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestScanner_ReadExcludes_RejectsEscapingEntries(t *testing.T) {
	tmpDir := t.TempDir()
	scanner := fs.NewScanner(fs.NewWalker())

	for _, entry := range []string{"../secret.txt", "/etc/passwd", `C:\Windows\win.ini`} {
		t.Run(entry, func(t *testing.T) {
			path := filepath.Join(tmpDir, "resources.cerc")
			require.NoError(t, os.WriteFile(path, []byte("a/y.txt\n"+entry+"\n"), domain.PrivateFilePerm))

			_, err := scanner.ReadExcludes(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
			assert.True(t, errors.Is(err, domain.ErrUnsafePath))
		})
	}
}

func TestWriteAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out", "file.c")

	err := fs.WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestWriteAtomic_FailureKeepsPreviousContent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.c")
	require.NoError(t, os.WriteFile(path, []byte("previous"), domain.PrivateFilePerm))

	boom := errors.New("boom")
	err := fs.WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be removed")
}
