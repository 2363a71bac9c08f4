package domain

// Config is the resolved project configuration. All paths are absolute.
type Config struct {
	// Dir is the directory holding the config file; relative paths resolve against it.
	Dir      string
	BuildDir string
	Affixes  Affixes
	// Archives is sorted by name.
	Archives []ArchiveSpec
}

// Archive returns the archive with the given name.
func (c *Config) Archive(name string) (ArchiveSpec, bool) {
	for _, a := range c.Archives {
		if a.Name == name {
			return a, true
		}
	}
	return ArchiveSpec{}, false
}

// Select returns the named archives in config order, or every archive when names is empty.
func (c *Config) Select(names []string) ([]ArchiveSpec, error) {
	if len(c.Archives) == 0 {
		return nil, ErrNoArchives
	}
	if len(names) == 0 {
		return c.Archives, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := c.Archive(n); !ok {
			return nil, archiveNotFound(n)
		}
		wanted[n] = true
	}

	selected := make([]ArchiveSpec, 0, len(wanted))
	for _, a := range c.Archives {
		if wanted[a.Name] {
			selected = append(selected, a)
		}
	}
	return selected, nil
}
