// Package saves backs up and restores Emberfield save files.
//
// Each backup is a timestamped directory under the loader's data dir
// containing a manifest.json and a copy of every file in the saves
// directory. File paths in the manifest are relative to the saves root,
// so a backup taken on one machine restores cleanly on another. SHA256
// hashes are verified before any file is written back.
package saves

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/paths"
	"github.com/seabright/shimloader/pkg/fileutil"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of save backups to retain.
const DefaultRetentionCount = 10

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no save backups exist.
	ErrNoBackupsFound = errors.New("no save backups found")

	// ErrBackupCorrupted indicates backup file integrity verification failed.
	ErrBackupCorrupted = errors.New("save backup corrupted")
)

// Manifest contains metadata about one save backup.
// It is stored as manifest.json in each backup directory.
type Manifest struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the backup was created.
	CreatedAt time.Time `json:"created_at"`

	// LoaderVersion is the shimloader version that created this backup.
	LoaderVersion string `json:"loader_version"`

	// Files contains metadata for each backed up file.
	Files []File `json:"files"`

	// ID is the backup identifier (timestamp format: 20260830T100712).
	// Populated when loading from disk but not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for a single backed up save file.
type File struct {
	// RelPath is the file's path relative to the saves directory. The
	// same path is used inside the backup directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}

// Manager handles save backup creation, restoration, and pruning.
type Manager struct {
	savesDir       string
	rootDir        string
	loaderVersion  string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithLoaderVersion records the loader version in new manifests.
func WithLoaderVersion(v string) Option {
	return func(m *Manager) {
		m.loaderVersion = v
	}
}

// NewManager creates a backup Manager for the given saves directory.
func NewManager(savesDir string, opts ...Option) *Manager {
	m := &Manager{
		savesDir:       savesDir,
		rootDir:        filepath.Join(paths.LoaderDataDir(), "save-backups"),
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RetentionCount returns the number of backups the manager retains.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// Backup snapshots every file under the saves directory.
// Returns the manifest describing the backup. An empty or missing saves
// directory is an error; backing up nothing is never what the player wants.
func (m *Manager) Backup() (*Manifest, error) {
	backupID := time.Now().Format("20060102T150405")
	backupPath := filepath.Join(m.rootDir, backupID)

	if err := os.MkdirAll(backupPath, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	var files []File
	err := filepath.WalkDir(m.savesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(m.savesDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(backupPath, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return errors.Wrap(err, "creating parent directory")
		}

		hash, mode, err := copyFile(path, dst)
		if err != nil {
			return errors.Wrapf(err, "backing up %s", rel)
		}
		files = append(files, File{RelPath: rel, SHA256Hash: hash, Mode: mode})
		return nil
	})
	if err != nil {
		os.RemoveAll(backupPath)
		return nil, errors.Wrapf(err, "walking saves directory %s", m.savesDir)
	}
	if len(files) == 0 {
		os.RemoveAll(backupPath)
		return nil, errors.Newf("no save files in %s", m.savesDir)
	}

	manifest := &Manifest{
		Version:       ManifestVersion,
		CreatedAt:     time.Now().UTC(),
		LoaderVersion: m.loaderVersion,
		Files:         files,
		ID:            backupID,
	}
	manifestPath := filepath.Join(backupPath, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// Restore writes a backup's files back into the saves directory.
// Every file's hash is verified before anything is written, so a corrupt
// backup never half-overwrites a live save.
func (m *Manager) Restore(backupID string) error {
	manifest, err := m.Get(backupID)
	if err != nil {
		return err
	}
	backupPath := filepath.Join(m.rootDir, backupID)

	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(backupPath, f.RelPath))
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
	}

	for _, f := range manifest.Files {
		src := filepath.Join(backupPath, f.RelPath)
		dst := filepath.Join(m.savesDir, f.RelPath)

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", f.RelPath)
		}
		if _, _, err := copyFile(src, dst); err != nil {
			return errors.Wrapf(err, "restoring %s", f.RelPath)
		}
		if err := os.Chmod(dst, f.Mode); err != nil {
			return errors.Wrapf(err, "setting permissions for %s", f.RelPath)
		}
	}

	return nil
}

// List returns all save backups, sorted by date, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Half-written or foreign directories are not backups.
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return manifests, nil
}

// Prune removes backups beyond the manager's retention count.
func (m *Manager) Prune() error {
	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := m.retentionCount; i < len(manifests); i++ {
		path := filepath.Join(m.rootDir, manifests[i].ID)
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(backupID string) (*Manifest, error) {
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}

	manifestPath := filepath.Join(m.rootDir, backupID, "manifest.json")
	data, err := fileutil.ReadFileWithLimit(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = backupID
	return &manifest, nil
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, returning the SHA256 hash and source mode.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	w := io.MultiWriter(dstFile, h)
	if _, err := io.Copy(w, srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
