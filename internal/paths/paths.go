package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/seabright/shimloader/internal/platform"
)

// AppName is the loader's directory name under the XDG base directories.
const AppName = "shimloader"

// GameFolderName is the name of the game's install folder as shipped by
// the standard store distributions.
const GameFolderName = "Emberfield"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// LoaderConfigDir returns the directory holding the loader's own config file.
// Returns: <ConfigHome>/shimloader/
func LoaderConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// LoaderDataDir returns the directory for loader state: markers, logs,
// rewrite caches. Returns: <DataHome>/shimloader/
func LoaderDataDir() string {
	return filepath.Join(DataHome(), AppName)
}

// LogDir returns the directory for loader log files.
// Returns: <LoaderDataDir>/logs/
func LogDir() string {
	return filepath.Join(LoaderDataDir(), "logs")
}

// ModsDir returns the mods directory inside the game installation.
// Mods live next to the game so the rewriter can resolve their references
// against the game binaries in the same directory.
func ModsDir(gameDir string) string {
	return filepath.Join(gameDir, "Mods")
}

// gameDirCandidates maps platforms to the relative install locations the
// standard store distributions use. Entries beginning with "~" are resolved
// against the user's home directory; others are absolute.
var gameDirCandidates = map[platform.Platform][]string{
	platform.Windows: {
		`C:\Program Files\Emberfield`,
		`C:\Program Files (x86)\Emberfield`,
		`C:\Program Files (x86)\Steam\steamapps\common\Emberfield`,
	},
	platform.Linux: {
		"~/.local/share/Steam/steamapps/common/Emberfield",
		"~/GOG Games/Emberfield",
		"/opt/emberfield",
	},
	platform.Mac: {
		"~/Library/Application Support/Steam/steamapps/common/Emberfield/Contents/MacOS",
		"/Applications/Emberfield.app/Contents/MacOS",
	},
}

// savePathSegments maps platforms to the save directory location relative to
// the user's home directory. The game writes saves itself; the loader only
// reads this location for diagnostics and backups.
var savePathSegments = map[platform.Platform][]string{
	platform.Windows: {"AppData", "Roaming", GameFolderName, "Saves"},
	platform.Linux:   {".config", GameFolderName, "Saves"},
	platform.Mac:     {".config", GameFolderName, "Saves"},
}

// GameDirCandidates returns the default install locations to search for the
// game on the given platform, in search order, with home-relative entries
// expanded. Unknown platforms yield nil.
func GameDirCandidates(p platform.Platform) []string {
	relPaths, ok := gameDirCandidates[p]
	if !ok {
		return nil
	}

	home := Home()
	results := make([]string, 0, len(relPaths))
	for _, rel := range relPaths {
		if len(rel) > 0 && rel[0] == '~' {
			if home == "" {
				continue
			}
			results = append(results, filepath.Join(home, rel[1:]))
			continue
		}
		results = append(results, rel)
	}
	return results
}

// SavesDir returns the game's save directory for the given platform.
// Returns an empty string for unknown platforms or when the home directory
// cannot be determined.
func SavesDir(p platform.Platform) string {
	segments, ok := savePathSegments[p]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, segments...)...)
}

// UpdateMarkerPath returns the path of the update marker file.
// Returns: <LoaderDataDir>/update.marker
func UpdateMarkerPath() string {
	return filepath.Join(LoaderDataDir(), "update.marker")
}

// CrashMarkerPath returns the path of the crash marker file.
// Returns: <LoaderDataDir>/crash.marker
func CrashMarkerPath() string {
	return filepath.Join(LoaderDataDir(), "crash.marker")
}
