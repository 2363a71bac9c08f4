// Package config provides the configuration loader for rcpack.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validArchiveNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Find returns the path of the nearest config file in cwd or one of its parents.
func Find(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", domain.Classify(domain.ErrConfiguration, domain.WithMeta(domain.ErrConfigNotFound, "cwd", cwd))
}

// Find returns the path of the nearest config file in dir or one of its parents.
func (l *Loader) Find(dir string) (string, error) {
	return Find(dir)
}

// Load reads the configuration file at path and resolves every archive.
func (l *Loader) Load(path string) (*domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.Classify(domain.ErrConfiguration, zerr.Wrap(err, domain.ErrConfigReadFailed.Error()))
	}

	var packfile Packfile
	if err := readAndUnmarshalYAML(absPath, &packfile); err != nil {
		return nil, domain.Classify(domain.ErrConfiguration, domain.WithMeta(err, "path", absPath))
	}

	cfg, err := l.resolve(filepath.Dir(absPath), &packfile)
	if err != nil {
		return nil, domain.Classify(domain.ErrConfiguration, domain.WithMeta(err, "path", absPath))
	}
	return cfg, nil
}

func (l *Loader) resolve(configDir string, packfile *Packfile) (*domain.Config, error) {
	switch packfile.Version {
	case SupportedVersion:
	case "":
		l.Logger.Warn(fmt.Sprintf("no version declared in %s, assuming %q", domain.ConfigFileName, SupportedVersion))
	default:
		return nil, domain.WithMeta(domain.ErrUnsupportedVersion, "version", packfile.Version)
	}

	buildDir := packfile.BuildDir
	if buildDir == "" {
		buildDir = domain.DefaultBuildDir
	}

	cfg := &domain.Config{
		Dir:      configDir,
		BuildDir: resolvePath(configDir, buildDir),
		Affixes:  packfile.Affixes.Merge(domain.DefaultAffixes()),
	}

	names := make([]string, 0, len(packfile.Archives))
	for name := range packfile.Archives {
		names = append(names, name)
	}
	// Maps iteration order is random, so archives are sorted for determinism.
	slices.Sort(names)

	if len(names) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s declares no archives", domain.ConfigFileName))
	}

	for _, name := range names {
		spec, err := resolveArchive(cfg, name, packfile.Archives[name])
		if err != nil {
			return nil, domain.WithMeta(err, "archive", name)
		}
		cfg.Archives = append(cfg.Archives, spec)
	}

	return cfg, nil
}

func resolveArchive(cfg *domain.Config, name string, dto ArchiveDTO) (domain.ArchiveSpec, error) {
	if !validArchiveNameRegex.MatchString(name) {
		return domain.ArchiveSpec{}, domain.ErrInvalidArchiveName
	}
	if strings.TrimSpace(dto.Root) == "" {
		return domain.ArchiveSpec{}, domain.ErrMissingArchiveRoot
	}

	prefix := dto.SymbolPrefix
	if prefix == "" {
		prefix = domain.DefaultSymbolPrefix
	}
	if !domain.IsIdentifier(prefix) {
		return domain.ArchiveSpec{}, domain.WithMeta(domain.ErrInvalidSymbolPrefix, "symbol_prefix", prefix)
	}

	header := dto.Header
	if header == "" {
		header = domain.DefaultHeaderName
	}
	header = cfg.Affixes.Header.Apply(header)

	srcDir := filepath.Join(cfg.BuildDir, domain.SourceDirName)
	spec := domain.ArchiveSpec{
		Name:         name,
		Root:         resolvePath(cfg.Dir, dto.Root),
		SymbolPrefix: prefix,
		Header:       filepath.ToSlash(header),
		CachePath:    filepath.Join(cfg.BuildDir, cfg.Affixes.Cache.Apply(name)),
		SourcePath:   filepath.Join(srcDir, cfg.Affixes.Source.Apply(name)),
		DepfilePath:  filepath.Join(srcDir, cfg.Affixes.Depfile.Apply(name)),
		HeaderPath:   filepath.Join(srcDir, filepath.FromSlash(header)),
	}
	if dto.Exclude != "" {
		spec.ExcludeFile = resolvePath(cfg.Dir, dto.Exclude)
	}
	return spec, nil
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readAndUnmarshalYAML reads a YAML file and decodes it into target, rejecting unknown keys.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
