// Package game locates the Emberfield installation on disk.
package game

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/seabright/shimloader/internal/binaries"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/paths"
	"github.com/seabright/shimloader/internal/platform"
)

// VersionFileName is the file the game writes its version string to.
const VersionFileName = "version.txt"

// Install describes a located game installation.
type Install struct {
	// Dir is the absolute path to the game directory.
	Dir string

	// Platform is the platform the installation was located for.
	Platform platform.Platform
}

// PrimaryBinary returns the game binary that must exist for an
// installation to be considered valid on the given platform.
func PrimaryBinary(p platform.Platform) *binaries.Binary {
	if p == platform.Windows {
		return binaries.GameCore
	}
	return binaries.GameMerged
}

// Locate finds the game installation for the given platform. When override
// is non-empty it is used as the game directory and must contain the
// primary game binary. Otherwise the well-known install locations are
// probed in order and the first directory containing the primary binary
// wins.
func Locate(p platform.Platform, override string) (*Install, error) {
	primary := PrimaryBinary(p)

	if override != "" {
		if !hasBinary(override, primary) {
			return nil, errors.Wrapf(errors.ErrGameNotFound, "no %s in %s", primary.File, override)
		}
		return &Install{Dir: override, Platform: p}, nil
	}

	candidates := paths.GameDirCandidates(p)
	for _, dir := range candidates {
		if hasBinary(dir, primary) {
			return &Install{Dir: dir, Platform: p}, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrGameNotFound, "searched %d locations", len(candidates))
}

// Version reads the game's version string from version.txt in the
// install directory. A missing file yields an empty version and no error
// since older game builds did not write one.
func (i *Install) Version() (string, error) {
	data, err := os.ReadFile(filepath.Join(i.Dir, VersionFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading game version")
	}
	return strings.TrimSpace(string(data)), nil
}

// Executable returns the path of the process to launch. The Windows build
// ships a native launcher executable; Linux and Mac launch the merged game
// binary's host wrapper.
func (i *Install) Executable() string {
	if i.Platform == platform.Windows {
		return filepath.Join(i.Dir, "Emberfield.exe")
	}
	return filepath.Join(i.Dir, "EmberfieldGame")
}

// ModsDir returns the mods directory inside the installation.
func (i *Install) ModsDir() string {
	return paths.ModsDir(i.Dir)
}

func hasBinary(dir string, b *binaries.Binary) bool {
	info, err := os.Stat(b.Path(dir))
	return err == nil && info.Mode().IsRegular()
}
