// Package app implements the application layer for rcpack.
package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/rcpack/internal/adapters/watcher" //nolint:depguard // debouncing is a watch-loop concern
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/rcpack/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	builder      ports.ManifestBuilder
	cache        ports.ManifestCache
	emitter      ports.Emitter
	hasher       ports.Hasher
	store        ports.BuildInfoStore
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pipe *pipeline.Pipeline,
	builder ports.ManifestBuilder,
	cache ports.ManifestCache,
	emitter ports.Emitter,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	fileWatcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		builder:      builder,
		cache:        cache,
		emitter:      emitter,
		hasher:       hasher,
		store:        store,
		watcher:      fileWatcher,
		logger:       log,
	}
}

// BuildOptions configuration for the Build and Emit methods.
type BuildOptions struct {
	Force bool
}

// ResolveConfig returns the absolute path of the config file to use: path
// itself when given, otherwise the nearest config file above the working directory.
func (a *App) ResolveConfig(path string) (string, error) {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", domain.Classify(domain.ErrConfiguration, zerr.Wrap(err, domain.ErrConfigReadFailed.Error()))
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", domain.Classify(domain.ErrConfiguration, zerr.Wrap(err, "failed to get working directory"))
	}
	return a.configLoader.Find(cwd)
}

// load reads the config and selects the named archives.
func (a *App) load(configPath string, names []string) (*domain.Config, []domain.ArchiveSpec, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	archives, err := cfg.Select(names)
	if err != nil {
		return nil, nil, domain.Classify(domain.ErrConfiguration, err)
	}
	return cfg, archives, nil
}

func (a *App) loadOne(configPath, name string) (*domain.Config, domain.ArchiveSpec, error) {
	cfg, archives, err := a.load(configPath, []string{name})
	if err != nil {
		return nil, domain.ArchiveSpec{}, err
	}
	return cfg, archives[0], nil
}

// Build syncs the manifest cache and emits the unit of every selected archive.
func (a *App) Build(ctx context.Context, configPath string, names []string, opts BuildOptions) ([]domain.ArchiveResult, error) {
	cfg, archives, err := a.load(configPath, names)
	if err != nil {
		return nil, err
	}
	return a.build(ctx, cfg, archives, opts)
}

func (a *App) build(ctx context.Context, cfg *domain.Config, archives []domain.ArchiveSpec, opts BuildOptions) ([]domain.ArchiveResult, error) {
	results, err := a.pipeline.Run(ctx, cfg.BuildDir, archives, pipeline.Options{Force: opts.Force})
	a.report(results)
	return results, err
}

// Manifest only syncs the manifest cache of every selected archive.
func (a *App) Manifest(ctx context.Context, configPath string, names []string) ([]domain.ArchiveResult, error) {
	_, archives, err := a.load(configPath, names)
	if err != nil {
		return nil, err
	}
	results, err := a.pipeline.Manifest(ctx, archives)
	for _, res := range results {
		state := "unchanged"
		if res.CacheChanged {
			state = "updated"
		}
		a.logger.Info(fmt.Sprintf("%s: manifest %s (%d files)", res.Archive, state, res.Entries))
	}
	return results, err
}

// Emit emits every selected archive from its existing manifest cache.
func (a *App) Emit(ctx context.Context, configPath string, names []string, opts BuildOptions) ([]domain.ArchiveResult, error) {
	cfg, archives, err := a.load(configPath, names)
	if err != nil {
		return nil, err
	}
	results, err := a.pipeline.Emit(ctx, cfg.BuildDir, archives, pipeline.Options{Force: opts.Force})
	a.report(results)
	return results, err
}

func (a *App) report(results []domain.ArchiveResult) {
	for _, res := range results {
		switch res.SourceStatus {
		case domain.StageStatusCompleted:
			a.logger.Info(fmt.Sprintf("%s: emitted %d files", res.Archive, res.Entries))
		case domain.StageStatusCached:
			a.logger.Info(fmt.Sprintf("%s: up to date (%d files)", res.Archive, res.Entries))
		default:
		}
	}
}

// ListEntry is one file of an archive as it would be embedded.
type ListEntry struct {
	Path   string
	Symbol string
	Size   int64
}

// List returns the live manifest of an archive with each file's symbol and size.
func (a *App) List(_ context.Context, configPath, name string) ([]ListEntry, error) {
	_, spec, err := a.loadOne(configPath, name)
	if err != nil {
		return nil, err
	}

	excludes, err := a.builder.ReadExcludes(spec.ExcludeFile)
	if err != nil {
		return nil, err
	}
	m, err := a.builder.BuildManifest(spec.Root, excludes)
	if err != nil {
		return nil, err
	}

	entries := domain.LoadEntries(spec.Root, m.Entries(), m.Index())
	list := make([]ListEntry, 0, len(entries))
	for _, entry := range entries {
		info, err := os.Stat(entry.AbsPath)
		if err != nil {
			return nil, domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "path", entry.AbsPath))
		}
		list = append(list, ListEntry{
			Path:   entry.RelPath,
			Symbol: domain.SymbolName(spec.SymbolPrefix, entry.RelPath),
			Size:   info.Size(),
		})
	}
	return list, nil
}

// Verify decodes the generated unit of an archive and compares it with the
// manifest cache and the files on disk.
func (a *App) Verify(_ context.Context, configPath, name string) (*domain.VerifyReport, error) {
	_, spec, err := a.loadOne(configPath, name)
	if err != nil {
		return nil, err
	}

	decoded, err := a.emitter.ReadUnit(spec)
	if err != nil {
		return nil, err
	}
	paths, err := a.cache.Read(spec.CachePath)
	if err != nil {
		return nil, err
	}

	entries, err := a.builder.LoadEntries(spec.Root, paths)
	if err != nil {
		return nil, err
	}

	report := &domain.VerifyReport{Archive: spec.Name, Files: len(decoded.Files)}
	listed := make(map[string]string, len(entries))
	for _, entry := range entries {
		listed[entry.RelPath] = entry.AbsPath
	}

	embedded := make(map[string]bool, len(decoded.Files))
	for _, file := range decoded.Files {
		key := domain.PathKey(file.Path)
		embedded[key] = true
		absPath, ok := listed[key]
		if !ok {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{Path: file.Path, Reason: domain.MismatchNotInManifest})
			continue
		}

		onDisk, err := a.hasher.ComputeOutputHash(absPath)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			report.Mismatches = append(report.Mismatches, domain.Mismatch{Path: file.Path, Reason: domain.MismatchFileMissing})
		case err != nil:
			return nil, domain.Classify(domain.ErrIO, err)
		case onDisk != a.hasher.HashBytes(file.Data):
			report.Mismatches = append(report.Mismatches, domain.Mismatch{Path: file.Path, Reason: domain.MismatchContent})
		}
	}
	for _, entry := range entries {
		if !embedded[entry.RelPath] {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{Path: entry.RelPath, Reason: domain.MismatchMissingFromUnit})
		}
	}

	if !report.OK() {
		err := zerr.With(zerr.Wrap(domain.ErrArchiveStale, "verification failed"), "archive", spec.Name)
		return report, zerr.With(err, "mismatches", len(report.Mismatches))
	}
	return report, nil
}

// Header writes the support header of an archive to out, or to the configured
// header path when out is empty.
func (a *App) Header(_ context.Context, configPath, name, out string) (string, error) {
	_, spec, err := a.loadOne(configPath, name)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = spec.HeaderPath
	}
	if err := a.emitter.EmitHeader(spec, out); err != nil {
		return "", err
	}
	a.logger.Info("wrote " + out)
	return out, nil
}

// Deps returns the files the generated unit of an archive depends on:
// the manifest cache followed by every cached entry.
func (a *App) Deps(_ context.Context, configPath, name string) ([]string, error) {
	_, spec, err := a.loadOne(configPath, name)
	if err != nil {
		return nil, err
	}
	paths, err := a.cache.Read(spec.CachePath)
	if err != nil {
		return nil, err
	}

	entries, err := a.builder.LoadEntries(spec.Root, paths)
	if err != nil {
		return nil, err
	}

	deps := []string{spec.CachePath}
	for _, entry := range entries {
		deps = append(deps, entry.AbsPath)
	}
	return deps, nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Force bool
	// Window is the debounce window; zero selects the watcher default.
	Window time.Duration
}

// Watch builds the selected archives and rebuilds the affected ones whenever
// their resource roots or exclusion lists change. Rebuilds never overlap.
// It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, configPath string, names []string, opts WatchOptions) error {
	cfg, archives, err := a.load(configPath, names)
	if err != nil {
		return err
	}

	if _, err := a.build(ctx, cfg, archives, BuildOptions{Force: opts.Force}); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, watchRoots(archives)); err != nil {
		return domain.Classify(domain.ErrIO, err)
	}
	defer func() { _ = a.watcher.Stop() }()

	window := opts.Window
	if window == 0 {
		window = watcher.DefaultDebounceWindow
	}

	triggers := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case triggers <- paths:
		case <-ctx.Done():
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			if !isUnder(cfg.BuildDir, event.Path) {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %d archive(s) for changes", len(archives)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-triggers:
			affected := affectedArchives(archives, paths)
			if len(affected) == 0 {
				continue
			}
			if _, err := a.build(ctx, cfg, affected, BuildOptions{}); err != nil && ctx.Err() == nil {
				a.logger.Error(err)
			}
		}
	}
}

func watchRoots(archives []domain.ArchiveSpec) []string {
	roots := make([]string, 0, len(archives)*2)
	for _, spec := range archives {
		roots = append(roots, spec.Root)
		if spec.ExcludeFile != "" {
			roots = append(roots, spec.ExcludeFile)
		}
	}
	return roots
}

// affectedArchives returns the archives whose root contains one of paths or
// whose exclusion list is one of paths.
func affectedArchives(archives []domain.ArchiveSpec, paths []string) []domain.ArchiveSpec {
	var affected []domain.ArchiveSpec
	for _, spec := range archives {
		for _, p := range paths {
			if isUnder(spec.Root, p) || (spec.ExcludeFile != "" && filepath.Clean(p) == spec.ExcludeFile) {
				affected = append(affected, spec)
				break
			}
		}
	}
	return affected
}

func isUnder(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Outputs also removes generated caches, sources, depfiles and headers.
	Outputs bool
}

// Clean removes the build info store and, optionally, every generated artifact.
func (a *App) Clean(_ context.Context, configPath string, options CleanOptions) error {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	a.logger.Info("removing build info store...")
	if err := a.store.Clear(cfg.BuildDir); err != nil {
		errs = errors.Join(errs, domain.Classify(domain.ErrIO, err))
	}

	if options.Outputs {
		// Helper to remove a generated file and log the action
		remove := func(path string) {
			if err := os.Remove(path); err != nil {
				if !errors.Is(err, iofs.ErrNotExist) {
					errs = errors.Join(errs, domain.Classify(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to remove generated file"), "path", path)))
				}
				return
			}
			a.logger.Info("removed " + path)
		}

		for _, spec := range cfg.Archives {
			remove(spec.CachePath)
			remove(spec.SourcePath)
			remove(spec.DepfilePath)
			remove(spec.HeaderPath)
		}
	}

	return errs
}
