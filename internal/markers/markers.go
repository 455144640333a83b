// Package markers manages the loader's sentinel marker files.
//
// Two markers live in the loader data directory. The crash marker is written
// just before the game process is spawned and removed after a clean exit; if
// it is still present at the next startup, the previous session died without
// shutting down and the loader can offer to start without mods. The update
// marker records the newest loader version seen by the update check so the
// startup banner can nag about stale installs without hitting the network.
//
// Markers are small JSON files written atomically so an interrupted write
// never leaves a half-parsed marker behind.
package markers

import (
	"encoding/json"
	"os"
	"time"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/pkg/fileutil"
)

// CrashInfo is the payload of the crash marker.
type CrashInfo struct {
	// LoaderVersion is the loader version that started the session.
	LoaderVersion string `json:"loader_version"`

	// StartedAt is when the game process was spawned.
	StartedAt time.Time `json:"started_at"`

	// ModCount is the number of mods loaded into the session.
	ModCount int `json:"mod_count"`
}

// UpdateInfo is the payload of the update marker.
type UpdateInfo struct {
	// NewestVersion is the newest loader version the update check has seen.
	NewestVersion string `json:"newest_version"`

	// CheckedAt is when the update check last ran.
	CheckedAt time.Time `json:"checked_at"`
}

// Store reads and writes marker files in a single directory.
type Store struct {
	crashPath  string
	updatePath string
}

// NewStore creates a store using the given marker file paths.
func NewStore(crashPath, updatePath string) *Store {
	return &Store{
		crashPath:  crashPath,
		updatePath: updatePath,
	}
}

// WriteCrash writes the crash marker. Called immediately before spawning the
// game process.
func (s *Store) WriteCrash(info CrashInfo) error {
	return errors.Wrap(fileutil.AtomicWriteJSON(s.crashPath, info), "writing crash marker")
}

// ReadCrash returns the crash marker payload, or nil if no marker exists.
func (s *Store) ReadCrash() (*CrashInfo, error) {
	var info CrashInfo
	ok, err := s.read(s.crashPath, &info)
	if err != nil || !ok {
		return nil, err
	}
	return &info, nil
}

// ClearCrash removes the crash marker. Called after a clean game exit.
// Removing an absent marker is not an error.
func (s *Store) ClearCrash() error {
	return s.clear(s.crashPath)
}

// WriteUpdate writes the update marker.
func (s *Store) WriteUpdate(info UpdateInfo) error {
	return errors.Wrap(fileutil.AtomicWriteJSON(s.updatePath, info), "writing update marker")
}

// ReadUpdate returns the update marker payload, or nil if no marker exists.
func (s *Store) ReadUpdate() (*UpdateInfo, error) {
	var info UpdateInfo
	ok, err := s.read(s.updatePath, &info)
	if err != nil || !ok {
		return nil, err
	}
	return &info, nil
}

// ClearUpdate removes the update marker.
func (s *Store) ClearUpdate() error {
	return s.clear(s.updatePath)
}

// read unmarshals the marker at path into v. The boolean reports whether a
// marker was present. A corrupt marker is surfaced as an error rather than
// silently treated as absent so the caller can warn and remove it.
func (s *Store) read(path string, v any) (bool, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading marker")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "corrupt marker %s", path)
	}
	return true, nil
}

func (s *Store) clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing marker")
	}
	return nil
}
