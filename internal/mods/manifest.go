package mods

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/pkg/fileutil"
)

// ManifestFileName is the file every mod directory must contain.
const ManifestFileName = "manifest.toml"

// Manifest describes a mod as declared by its author.
type Manifest struct {
	// Name is the mod's unique display name.
	Name string `toml:"name"`

	// Version is the mod's own semver version.
	Version string `toml:"version"`

	// Author is the mod author's display name.
	Author string `toml:"author,omitempty"`

	// Description is a short human-readable summary.
	Description string `toml:"description,omitempty"`

	// EntryAssembly is the file name of the mod's compiled binary, relative
	// to the mod directory. The rewriter patches this binary's assembly
	// references before the mod's code runs.
	EntryAssembly string `toml:"entry_assembly"`

	// MinimumLoaderVersion is the oldest loader version the mod works with.
	// Optional; empty means any.
	MinimumLoaderVersion string `toml:"minimum_loader_version,omitempty"`
}

// ParseManifest parses and validates manifest data.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidManifest, err.Error())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	return ParseManifest(data)
}

// Validate checks the manifest's required fields and version formats.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrInvalidManifest, "name is required")
	}
	if m.EntryAssembly == "" {
		return errors.Wrap(errors.ErrInvalidManifest, "entry_assembly is required")
	}
	if m.Version == "" {
		return errors.Wrap(errors.ErrInvalidManifest, "version is required")
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return errors.Wrapf(errors.ErrInvalidManifest, "version %q is not valid semver", m.Version)
	}
	if m.MinimumLoaderVersion != "" {
		if _, err := semver.NewVersion(m.MinimumLoaderVersion); err != nil {
			return errors.Wrapf(errors.ErrInvalidManifest,
				"minimum_loader_version %q is not valid semver", m.MinimumLoaderVersion)
		}
	}
	return nil
}

// CompatibleWith reports whether the mod accepts the given loader version.
// An empty MinimumLoaderVersion accepts every loader.
func (m *Manifest) CompatibleWith(loaderVersion string) (bool, error) {
	if m.MinimumLoaderVersion == "" {
		return true, nil
	}
	loader, err := semver.NewVersion(loaderVersion)
	if err != nil {
		return false, errors.Wrapf(err, "invalid loader version %q", loaderVersion)
	}
	// Validate() guarantees the minimum parses.
	min := semver.MustParse(m.MinimumLoaderVersion)
	return !loader.LessThan(min), nil
}
