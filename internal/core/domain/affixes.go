package domain

import (
	"path/filepath"
	"strings"
)

// Affix is the filename prefix and suffix of one artifact kind.
type Affix struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// Affixes holds the filename affixes of every artifact kind.
type Affixes struct {
	Cache   Affix `yaml:"cache"`
	Source  Affix `yaml:"source"`
	Depfile Affix `yaml:"depfile"`
	Header  Affix `yaml:"header"`
}

// DefaultAffixes returns the affixes used when the config leaves them empty.
func DefaultAffixes() Affixes {
	return Affixes{
		Cache:   Affix{Suffix: ".cerccache"},
		Source:  Affix{Suffix: "_data.c"},
		Depfile: Affix{Suffix: "_data.d"},
		Header:  Affix{Suffix: ".h"},
	}
}

// Merge fills every empty field of a from defaults.
func (a Affixes) Merge(defaults Affixes) Affixes {
	merge := func(v, d Affix) Affix {
		if v.Prefix == "" {
			v.Prefix = d.Prefix
		}
		if v.Suffix == "" {
			v.Suffix = d.Suffix
		}
		return v
	}
	return Affixes{
		Cache:   merge(a.Cache, defaults.Cache),
		Source:  merge(a.Source, defaults.Source),
		Depfile: merge(a.Depfile, defaults.Depfile),
		Header:  merge(a.Header, defaults.Header),
	}
}

// Apply adds the prefix to the base name and the suffix to the end of name,
// each only when not already present.
func (a Affix) Apply(name string) string {
	dir, base := filepath.Split(name)
	if a.Prefix != "" && !strings.HasPrefix(base, a.Prefix) {
		base = a.Prefix + base
	}
	if a.Suffix != "" && !strings.HasSuffix(base, a.Suffix) {
		base += a.Suffix
	}
	return dir + base
}
