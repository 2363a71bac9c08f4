package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rcpack/internal/adapters/config"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	path := createFile(t, dir, domain.ConfigFileName, `
version: "1"
archives:
  resources:
    root: data
    exclude: resources.cerc
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	build := filepath.Join(dir, "build")
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, build, cfg.BuildDir)
	assert.Equal(t, domain.DefaultAffixes(), cfg.Affixes)

	require.Len(t, cfg.Archives, 1)
	assert.Equal(t, domain.ArchiveSpec{
		Name:         "resources",
		Root:         filepath.Join(dir, "data"),
		ExcludeFile:  filepath.Join(dir, "resources.cerc"),
		SymbolPrefix: domain.DefaultSymbolPrefix,
		Header:       domain.DefaultHeaderName,
		CachePath:    filepath.Join(build, "resources.cerccache"),
		SourcePath:   filepath.Join(build, "src", "resources_data.c"),
		DepfilePath:  filepath.Join(build, "src", "resources_data.d"),
		HeaderPath:   filepath.Join(build, "src", domain.DefaultHeaderName),
	}, cfg.Archives[0])
}

func TestLoader_Load_CustomSettings(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	path := createFile(t, dir, domain.ConfigFileName, `
version: "1"
build_dir: out
affixes:
  cache: {prefix: "rc_", suffix: ".list"}
  source: {suffix: ".gen.c"}
archives:
  zeta:
    root: /abs/zeta
    symbol_prefix: zeta_data
    header: zeta
  alpha:
    root: assets/alpha
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	require.Len(t, cfg.Archives, 2)

	alpha, zeta := cfg.Archives[0], cfg.Archives[1]
	assert.Equal(t, "alpha", alpha.Name, "archives are sorted by name")
	assert.Equal(t, filepath.Join(out, "rc_alpha.list"), alpha.CachePath)
	assert.Equal(t, filepath.Join(out, "src", "alpha.gen.c"), alpha.SourcePath)
	assert.Equal(t, filepath.Join(out, "src", "alpha_data.d"), alpha.DepfilePath)
	assert.Empty(t, alpha.ExcludeFile)

	assert.Equal(t, filepath.Clean("/abs/zeta"), zeta.Root)
	assert.Equal(t, "zeta_data", zeta.SymbolPrefix)
	assert.Equal(t, "zeta.h", zeta.Header)
	assert.Equal(t, filepath.Join(out, "src", "zeta.h"), zeta.HeaderPath)
}

func TestLoader_Load_MissingVersionWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	path := createFile(t, t.TempDir(), domain.ConfigFileName, "archives:\n  res:\n    root: data\n")

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Archives, 1)
}

func TestLoader_Load_NoArchivesWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	path := createFile(t, t.TempDir(), domain.ConfigFileName, "version: \"1\"\n")

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Archives)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "unsupported version",
			content: "version: \"2\"\n",
			want:    domain.ErrUnsupportedVersion,
		},
		{
			name:    "invalid yaml",
			content: "version: [\n",
			want:    domain.ErrConfiguration,
		},
		{
			name:    "unknown key",
			content: "version: \"1\"\ntasks: {}\n",
			want:    domain.ErrConfiguration,
		},
		{
			name:    "invalid archive name",
			content: "version: \"1\"\narchives:\n  \"bad name\":\n    root: data\n",
			want:    domain.ErrInvalidArchiveName,
		},
		{
			name:    "missing root",
			content: "version: \"1\"\narchives:\n  res: {}\n",
			want:    domain.ErrMissingArchiveRoot,
		},
		{
			name:    "invalid symbol prefix",
			content: "version: \"1\"\narchives:\n  res:\n    root: data\n    symbol_prefix: 9lives\n",
			want:    domain.ErrInvalidSymbolPrefix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			path := createFile(t, t.TempDir(), domain.ConfigFileName, tt.content)

			_, err := loader.Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "config errors are classified")
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	want := createFile(t, root, domain.ConfigFileName, "version: \"1\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := config.Find(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFind_NotFound(t *testing.T) {
	_, err := config.Find(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
