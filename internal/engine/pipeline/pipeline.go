// Package pipeline runs the manifest and emission stages for configured archives.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options controls a pipeline run.
type Options struct {
	// Force re-emits every archive regardless of the build info store.
	Force bool
}

// Pipeline drives the manifest builder, manifest cache and emitter for each archive.
type Pipeline struct {
	builder   ports.ManifestBuilder
	cache     ports.ManifestCache
	emitter   ports.Emitter
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	depfile   ports.DepfileWriter
	telemetry ports.Telemetry
	logger    ports.Logger
	clock     domain.Clock
}

// New creates a new Pipeline.
func New(
	builder ports.ManifestBuilder,
	cache ports.ManifestCache,
	emitter ports.Emitter,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	depfile ports.DepfileWriter,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		builder:   builder,
		cache:     cache,
		emitter:   emitter,
		hasher:    hasher,
		store:     store,
		depfile:   depfile,
		telemetry: telemetry,
		logger:    logger,
		clock:     domain.SystemClock,
	}
}

// Run syncs each archive's manifest cache and then emits its unit from the cache.
// Archives are processed in order. A failing archive does not stop the others;
// the failures are joined into the returned error.
func (p *Pipeline) Run(ctx context.Context, buildDir string, archives []domain.ArchiveSpec, opts Options) ([]domain.ArchiveResult, error) {
	return p.each(ctx, archives, func(ctx context.Context, spec domain.ArchiveSpec, res *domain.ArchiveResult) error {
		if err := p.manifestStage(ctx, spec, res); err != nil {
			return err
		}
		return p.emitStage(ctx, buildDir, spec, opts, res)
	})
}

// Manifest only syncs the manifest cache of each archive.
func (p *Pipeline) Manifest(ctx context.Context, archives []domain.ArchiveSpec) ([]domain.ArchiveResult, error) {
	return p.each(ctx, archives, func(ctx context.Context, spec domain.ArchiveSpec, res *domain.ArchiveResult) error {
		return p.manifestStage(ctx, spec, res)
	})
}

// Emit only emits each archive from its existing manifest cache.
func (p *Pipeline) Emit(ctx context.Context, buildDir string, archives []domain.ArchiveSpec, opts Options) ([]domain.ArchiveResult, error) {
	return p.each(ctx, archives, func(ctx context.Context, spec domain.ArchiveSpec, res *domain.ArchiveResult) error {
		return p.emitStage(ctx, buildDir, spec, opts, res)
	})
}

type stageFunc func(ctx context.Context, spec domain.ArchiveSpec, res *domain.ArchiveResult) error

func (p *Pipeline) each(ctx context.Context, archives []domain.ArchiveSpec, fn stageFunc) ([]domain.ArchiveResult, error) {
	results := make([]domain.ArchiveResult, 0, len(archives))
	var errs []error

	for _, spec := range archives {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res := domain.ArchiveResult{
			Archive:      spec.Name,
			SourceStatus: domain.StageStatusPending,
			HeaderStatus: domain.StageStatusPending,
		}
		if err := fn(ctx, spec, &res); err != nil {
			if res.SourceStatus == domain.StageStatusRunning {
				res.SourceStatus = domain.StageStatusFailed
			}
			errs = append(errs, archiveError(spec.Name, err))
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

func archiveError(name string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "archive", name)
}

func (p *Pipeline) manifestStage(ctx context.Context, spec domain.ArchiveSpec, res *domain.ArchiveResult) (err error) {
	_, vertex := p.telemetry.Record(ctx, spec.Name+"/manifest")
	defer func() { vertex.Complete(err) }()

	excludes, err := p.builder.ReadExcludes(spec.ExcludeFile)
	if err != nil {
		return err
	}

	m, err := p.builder.BuildManifest(spec.Root, excludes)
	if err != nil {
		return err
	}

	changed, err := p.cache.Sync(m, spec.CachePath)
	if err != nil {
		return err
	}
	res.Entries = m.Len()
	res.CacheChanged = changed

	if !changed {
		vertex.Cached()
	}
	_, _ = fmt.Fprintf(vertex.Stdout(), "%d files, %d excluded\n", m.Len(), len(excludes))
	return nil
}

func (p *Pipeline) emitStage(ctx context.Context, buildDir string, spec domain.ArchiveSpec, opts Options, res *domain.ArchiveResult) (err error) {
	ctx, vertex := p.telemetry.Record(ctx, spec.Name+"/emit")
	defer func() { vertex.Complete(err) }()

	res.SourceStatus = domain.StageStatusRunning

	paths, err := p.cache.Read(spec.CachePath)
	if err != nil {
		return err
	}
	entries, err := p.builder.LoadEntries(spec.Root, paths)
	if err != nil {
		return err
	}
	res.Entries = len(entries)

	inputHash, err := p.hasher.ComputeInputHash(ctx, spec, entries)
	if err != nil {
		return err
	}

	if !opts.Force && p.upToDate(buildDir, spec, inputHash) {
		vertex.Cached()
		res.SourceStatus = domain.StageStatusCached
		return p.headerStage(ctx, spec, opts, res)
	}

	unit, err := p.emitter.Emit(ctx, spec, entries)
	if err != nil {
		return err
	}
	if err := p.depfile.Write(spec, entries); err != nil {
		return err
	}

	outputHash, err := p.hasher.ComputeOutputHash(spec.SourcePath)
	if err != nil {
		return domain.Classify(domain.ErrIO, err)
	}

	if err := p.store.Put(buildDir, domain.BuildInfo{
		Archive:    spec.Name,
		InputHash:  inputHash,
		OutputHash: outputHash,
		FileCount:  unit.FileCount,
		Timestamp:  p.clock(),
	}); err != nil {
		return domain.Classify(domain.ErrIO, err)
	}

	res.SourceStatus = domain.StageStatusCompleted
	writeUnitSummary(vertex.Stdout(), unit)

	return p.headerStage(ctx, spec, opts, res)
}

// upToDate reports whether the stored build info matches the input hash and the
// unit on disk is still the one that was recorded.
func (p *Pipeline) upToDate(buildDir string, spec domain.ArchiveSpec, inputHash string) bool {
	info, err := p.store.Get(buildDir, spec.Name)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("ignoring unreadable build info for %s: %v", spec.Name, err))
		return false
	}
	if info == nil || info.InputHash != inputHash {
		return false
	}

	outputHash, err := p.hasher.ComputeOutputHash(spec.SourcePath)
	if err != nil {
		return false
	}
	return outputHash == info.OutputHash
}

// headerStage writes the support header when it does not exist yet. An existing
// header is left alone so its timestamp does not trigger recompilation.
func (p *Pipeline) headerStage(ctx context.Context, spec domain.ArchiveSpec, opts Options, res *domain.ArchiveResult) (err error) {
	if spec.HeaderPath == "" {
		return nil
	}

	_, vertex := p.telemetry.Record(ctx, spec.Name+"/header")
	defer func() { vertex.Complete(err) }()

	if !opts.Force {
		if _, statErr := p.hasher.ComputeOutputHash(spec.HeaderPath); statErr == nil {
			vertex.Cached()
			res.HeaderStatus = domain.StageStatusCached
			return nil
		}
	}

	res.HeaderStatus = domain.StageStatusRunning
	if err := p.emitter.EmitHeader(spec, spec.HeaderPath); err != nil {
		res.HeaderStatus = domain.StageStatusFailed
		return err
	}
	res.HeaderStatus = domain.StageStatusCompleted
	return nil
}

func writeUnitSummary(w io.Writer, unit *domain.ArchiveUnit) {
	total := 0
	for _, size := range unit.Sizes {
		total += size
	}
	_, _ = fmt.Fprintf(w, "%d files, %d bytes\n", unit.FileCount, total)
}
