package config

import "go.trai.ch/rcpack/internal/core/domain"

// SupportedVersion is the only config schema version understood by the loader.
const SupportedVersion = "1"

// Packfile represents the structure of the rcpack.yaml configuration file.
type Packfile struct {
	Version  string                `yaml:"version"`
	BuildDir string                `yaml:"build_dir"`
	Archives map[string]ArchiveDTO `yaml:"archives"`
	Affixes  domain.Affixes        `yaml:"affixes"`
}

// ArchiveDTO represents an archive definition in the configuration.
type ArchiveDTO struct {
	Root         string `yaml:"root"`
	Exclude      string `yaml:"exclude"`
	SymbolPrefix string `yaml:"symbol_prefix"`
	Header       string `yaml:"header"`
}
