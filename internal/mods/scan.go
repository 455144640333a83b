package mods

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/seabright/shimloader/internal/errors"
)

// Mod is an installed mod: a directory under the mods root with a valid
// manifest.
type Mod struct {
	// Dir is the mod's directory.
	Dir string

	// Manifest is the parsed manifest.
	Manifest *Manifest
}

// EntryPath returns the full path of the mod's entry assembly.
func (m *Mod) EntryPath() string {
	return filepath.Join(m.Dir, m.Manifest.EntryAssembly)
}

// ScanResult is the outcome of scanning a mods directory.
type ScanResult struct {
	// Mods are the successfully loaded mods, sorted by name.
	Mods []*Mod

	// Broken maps mod directory names to the error that made them unloadable.
	// Broken mods are skipped, never fatal: one bad manifest must not take
	// down the whole session.
	Broken map[string]error
}

// Scan enumerates the mods directory. Each immediate subdirectory containing
// a manifest file is a mod candidate; subdirectories without one are ignored
// (mod authors often ship loose asset folders). A missing mods directory
// yields an empty result, not an error.
func Scan(modsDir string) (*ScanResult, error) {
	result := &ScanResult{Broken: make(map[string]error)}

	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrap(err, "reading mods directory")
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(modsDir, entry.Name())
		manifestPath := filepath.Join(dir, ManifestFileName)

		if _, err := os.Stat(manifestPath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			result.Broken[entry.Name()] = errors.Wrap(err, "checking manifest")
			continue
		}

		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			result.Broken[entry.Name()] = err
			continue
		}

		result.Mods = append(result.Mods, &Mod{Dir: dir, Manifest: manifest})
	}

	sort.Slice(result.Mods, func(i, j int) bool {
		return result.Mods[i].Manifest.Name < result.Mods[j].Manifest.Name
	})

	return result, nil
}

// Find returns the installed mod with the given name.
func (r *ScanResult) Find(name string) (*Mod, error) {
	for _, m := range r.Mods {
		if m.Manifest.Name == name {
			return m, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrModNotFound, "%q", name)
}
