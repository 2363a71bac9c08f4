package app_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rcpack/internal/adapters/cas"
	"go.trai.ch/rcpack/internal/adapters/config"
	"go.trai.ch/rcpack/internal/adapters/depfile"
	"go.trai.ch/rcpack/internal/adapters/emitter"
	"go.trai.ch/rcpack/internal/adapters/fs"
	"go.trai.ch/rcpack/internal/adapters/manifest"
	"go.trai.ch/rcpack/internal/adapters/telemetry"
	"go.trai.ch/rcpack/internal/adapters/watcher"
	"go.trai.ch/rcpack/internal/app"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/rcpack/internal/core/ports/mocks"
	"go.trai.ch/rcpack/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

var fixedTime = time.Date(2026, time.October, 19, 12, 30, 45, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

const projectConfig = `version: "1"
archives:
  resources:
    root: data
    exclude: resources.cerc
`

type testProject struct {
	dir        string
	configPath string
	app        *app.App
	watcher    *mocks.MockWatcher
	logger     *mocks.MockLogger
}

func (p *testProject) path(parts ...string) string {
	return filepath.Join(append([]string{p.dir}, parts...)...)
}

func (p *testProject) write(t *testing.T, rel, content string) {
	t.Helper()
	path := p.path(filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

// newProject lays out the a/x.txt + excluded a/y.txt scenario and wires the
// real adapters around a mocked watcher and logger.
func newProject(t *testing.T) *testProject {
	t.Helper()
	ctrl := gomock.NewController(t)

	p := &testProject{
		dir:     t.TempDir(),
		watcher: mocks.NewMockWatcher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	p.configPath = p.path(domain.ConfigFileName)
	p.write(t, domain.ConfigFileName, projectConfig)
	p.write(t, "resources.cerc", "; excluded\na/y.txt\n")
	p.write(t, "data/a/x.txt", "abc")
	p.write(t, "data/a/y.txt", "skip me")

	p.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	p.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	scanner := fs.NewScanner(fs.NewWalker())
	cache := manifest.NewCache(fixedClock)
	em := emitter.New(fixedClock)
	hasher := fs.NewHasher()
	store := cas.NewStore()
	pipe := pipeline.New(scanner, cache, em, hasher, store, depfile.NewWriter(), telemetry.NewNoOp(), p.logger)

	p.app = app.New(config.NewLoader(p.logger), pipe, scanner, cache, em, hasher, store, p.watcher, p.logger)
	return p
}

func TestApp_Build(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	results, err := p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ArchiveResult{
		Archive:      "resources",
		Entries:      1,
		CacheChanged: true,
		SourceStatus: domain.StageStatusCompleted,
		HeaderStatus: domain.StageStatusCompleted,
	}, results[0])

	source, err := os.ReadFile(p.path("build", "src", "resources_data.c"))
	require.NoError(t, err)
	assert.Contains(t, string(source), "static const unsigned char ce_resource_data_e5a357177b14606beada1dcda18005bc[] = {\n\t0x61,0x62,0x63,\n};")
	assert.Contains(t, string(source), "const size_t CE_RESOURCE_DATA_COUNT = 1;")
	assert.NotContains(t, string(source), "a/y.txt")
	assert.FileExists(t, p.path("build", "src", "resources_data.d"))
	assert.FileExists(t, p.path("build", "src", domain.DefaultHeaderName))

	// A second build with nothing changed leaves every artifact alone.
	results, err = p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	assert.False(t, results[0].CacheChanged)
	assert.Equal(t, domain.StageStatusCached, results[0].SourceStatus)
	assert.Equal(t, domain.StageStatusCached, results[0].HeaderStatus)

	// Changing content re-emits without touching the manifest cache.
	p.write(t, "data/a/x.txt", "abcd")
	results, err = p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	assert.False(t, results[0].CacheChanged)
	assert.Equal(t, domain.StageStatusCompleted, results[0].SourceStatus)

	report, err := p.app.Verify(ctx, p.configPath, "resources")
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Files)
}

func TestApp_Build_ForceReemits(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	_, err := p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)

	results, err := p.app.Build(ctx, p.configPath, []string{"resources"}, app.BuildOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusCompleted, results[0].SourceStatus)
	assert.Equal(t, domain.StageStatusCompleted, results[0].HeaderStatus)
}

func TestApp_ManifestThenEmit(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	_, err := p.app.Emit(ctx, p.configPath, nil, app.BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.ErrorContains(t, err, domain.ErrCacheMissing.Error())

	results, err := p.app.Manifest(ctx, p.configPath, nil)
	require.NoError(t, err)
	assert.True(t, results[0].CacheChanged)
	assert.NoFileExists(t, p.path("build", "src", "resources_data.c"))

	results, err = p.app.Emit(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusCompleted, results[0].SourceStatus)
	assert.FileExists(t, p.path("build", "src", "resources_data.c"))
}

func TestApp_UnknownArchive(t *testing.T) {
	p := newProject(t)

	_, err := p.app.Build(context.Background(), p.configPath, []string{"fonts"}, app.BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArchiveNotFound))
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestApp_ConfigLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load("rcpack.yaml").Return(nil, errors.New("config load error"))

	a := app.New(mockLoader, nil, nil, nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl))

	_, err := a.Build(context.Background(), "rcpack.yaml", nil, app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
	assert.ErrorContains(t, err, "config load error")
}

func TestApp_Verify_DetectsStaleUnit(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	_, err := p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)

	p.write(t, "data/a/x.txt", "changed")
	p.write(t, "data/b/new.txt", "new")
	_, err = p.app.Manifest(ctx, p.configPath, nil)
	require.NoError(t, err)

	report, err := p.app.Verify(ctx, p.configPath, "resources")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArchiveStale))
	assert.Equal(t, []domain.Mismatch{
		{Path: "a/x.txt", Reason: domain.MismatchContent},
		{Path: "b/new.txt", Reason: domain.MismatchMissingFromUnit},
	}, report.Mismatches)

	require.NoError(t, os.Remove(p.path("data", "a", "x.txt")))
	report, err = p.app.Verify(ctx, p.configPath, "resources")
	require.Error(t, err)
	assert.Contains(t, report.Mismatches, domain.Mismatch{Path: "a/x.txt", Reason: domain.MismatchFileMissing})
}

func TestApp_Verify_MissingUnit(t *testing.T) {
	p := newProject(t)

	_, err := p.app.Verify(context.Background(), p.configPath, "resources")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestApp_List(t *testing.T) {
	p := newProject(t)
	p.write(t, "data/B.bin", "0123456789")

	list, err := p.app.List(context.Background(), p.configPath, "resources")
	require.NoError(t, err)

	assert.Equal(t, []app.ListEntry{
		{Path: "a/x.txt", Symbol: "ce_resource_data_e5a357177b14606beada1dcda18005bc", Size: 3},
		{Path: "b.bin", Symbol: domain.SymbolName(domain.DefaultSymbolPrefix, "b.bin"), Size: 10},
	}, list)
}

func TestApp_Deps(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	_, err := p.app.Manifest(ctx, p.configPath, nil)
	require.NoError(t, err)

	deps, err := p.app.Deps(ctx, p.configPath, "resources")
	require.NoError(t, err)
	assert.Equal(t, []string{
		p.path("build", "resources.cerccache"),
		p.path("data", "a", "x.txt"),
	}, deps)
}

func TestApp_Deps_ResolvesMixedCaseFiles(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()
	p.write(t, "data/Fonts/Big.TTF", "font")

	_, err := p.app.Manifest(ctx, p.configPath, nil)
	require.NoError(t, err)

	cache, err := os.ReadFile(p.path("build", "resources.cerccache"))
	require.NoError(t, err)
	assert.Contains(t, string(cache), "fonts/big.ttf")
	assert.NotContains(t, string(cache), "Fonts/Big.TTF")

	deps, err := p.app.Deps(ctx, p.configPath, "resources")
	require.NoError(t, err)
	assert.Equal(t, []string{
		p.path("build", "resources.cerccache"),
		p.path("data", "a", "x.txt"),
		p.path("data", "Fonts", "Big.TTF"),
	}, deps)

	_, err = p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	report, err := p.app.Verify(ctx, p.configPath, "resources")
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestApp_Header(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	out, err := p.app.Header(ctx, p.configPath, "resources", "")
	require.NoError(t, err)
	assert.Equal(t, p.path("build", "src", domain.DefaultHeaderName), out)
	assert.FileExists(t, out)

	custom := p.path("include", "resources.h")
	out, err = p.app.Header(ctx, p.configPath, "resources", custom)
	require.NoError(t, err)
	assert.Equal(t, custom, out)

	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#ifndef RESOURCES_H")
}

func TestApp_Clean(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	_, err := p.app.Build(ctx, p.configPath, nil, app.BuildOptions{})
	require.NoError(t, err)
	require.DirExists(t, domain.DefaultStorePath(p.path("build")))

	require.NoError(t, p.app.Clean(ctx, p.configPath, app.CleanOptions{}))
	assert.NoDirExists(t, p.path("build", domain.StateDirName))
	assert.FileExists(t, p.path("build", "src", "resources_data.c"))

	require.NoError(t, p.app.Clean(ctx, p.configPath, app.CleanOptions{Outputs: true}))
	for _, rel := range []string{"resources.cerccache", "src/resources_data.c", "src/resources_data.d", "src/" + domain.DefaultHeaderName} {
		assert.NoFileExists(t, p.path("build", filepath.FromSlash(rel)))
	}

	// Cleaning an already clean tree is not an error.
	require.NoError(t, p.app.Clean(ctx, p.configPath, app.CleanOptions{Outputs: true}))
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := newProject(t)
		p.logger.EXPECT().Error(gomock.Any()).Times(0)

		events := make(chan ports.WatchEvent)
		p.watcher.EXPECT().Start(gomock.Any(), []string{p.path("data"), p.path("resources.cerc")}).Return(nil)
		p.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			for event := range events {
				if !yield(event) {
					return
				}
			}
		}))
		p.watcher.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- p.app.Watch(ctx, p.configPath, nil, app.WatchOptions{})
		}()

		// Initial build.
		synctest.Wait()
		report, err := p.app.Verify(context.Background(), p.configPath, "resources")
		require.NoError(t, err)
		assert.True(t, report.OK())

		p.write(t, "data/a/x.txt", "abcd")
		events <- ports.WatchEvent{Path: p.path("data", "a", "x.txt"), Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: p.path("build", "src", "resources_data.c"), Operation: ports.OpWrite}

		time.Sleep(2 * watcher.DefaultDebounceWindow)
		synctest.Wait()

		report, err = p.app.Verify(context.Background(), p.configPath, "resources")
		require.NoError(t, err)
		assert.True(t, report.OK(), "unit must be rebuilt after the change")

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_ResolveConfig(t *testing.T) {
	p := newProject(t)

	path, err := p.app.ResolveConfig(p.configPath)
	require.NoError(t, err)
	assert.Equal(t, p.configPath, path)

	nested := p.path("data", "a")
	t.Chdir(nested)
	path, err = p.app.ResolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, p.configPath, path)
}
