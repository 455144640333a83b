package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seabright/shimloader/internal/platform"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name string
		perm os.FileMode
	}{
		{name: "default perm", perm: 0},
		{name: "explicit perm", perm: 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "a", "b", "c")
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Fatalf("EnsureDir() error = %v", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if !info.IsDir() {
				t.Error("EnsureDir() did not create a directory")
			}

			// Idempotent on existing directory.
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Errorf("EnsureDir() second call error = %v", err)
			}
		})
	}
}

func TestLoaderDirs(t *testing.T) {
	if got := LoaderConfigDir(); filepath.Base(got) != AppName {
		t.Errorf("LoaderConfigDir() = %q, want basename %q", got, AppName)
	}
	if got := LoaderDataDir(); filepath.Base(got) != AppName {
		t.Errorf("LoaderDataDir() = %q, want basename %q", got, AppName)
	}
	if got := LogDir(); filepath.Base(got) != "logs" {
		t.Errorf("LogDir() = %q, want basename logs", got)
	}
}

func TestModsDir(t *testing.T) {
	got := ModsDir("/opt/emberfield")
	want := filepath.Join("/opt/emberfield", "Mods")
	if got != want {
		t.Errorf("ModsDir() = %q, want %q", got, want)
	}
}

func TestGameDirCandidates(t *testing.T) {
	tests := []struct {
		name     string
		platform platform.Platform
		wantMin  int
	}{
		{name: "windows", platform: platform.Windows, wantMin: 2},
		{name: "linux", platform: platform.Linux, wantMin: 2},
		{name: "mac", platform: platform.Mac, wantMin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GameDirCandidates(tt.platform)
			if len(got) < tt.wantMin {
				t.Fatalf("GameDirCandidates(%v) returned %d entries, want at least %d",
					tt.platform, len(got), tt.wantMin)
			}
			for _, dir := range got {
				if strings.HasPrefix(dir, "~") {
					t.Errorf("candidate %q not expanded", dir)
				}
			}
		})
	}
}

func TestGameDirCandidates_UnknownPlatform(t *testing.T) {
	if got := GameDirCandidates(platform.Platform(42)); got != nil {
		t.Errorf("GameDirCandidates(unknown) = %v, want nil", got)
	}
}

func TestSavesDir(t *testing.T) {
	home := Home()
	if home == "" {
		t.Skip("home directory unavailable")
	}

	tests := []struct {
		name     string
		platform platform.Platform
		want     string
	}{
		{
			name:     "windows",
			platform: platform.Windows,
			want:     filepath.Join(home, "AppData", "Roaming", GameFolderName, "Saves"),
		},
		{
			name:     "linux",
			platform: platform.Linux,
			want:     filepath.Join(home, ".config", GameFolderName, "Saves"),
		},
		{
			name:     "mac",
			platform: platform.Mac,
			want:     filepath.Join(home, ".config", GameFolderName, "Saves"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SavesDir(tt.platform); got != tt.want {
				t.Errorf("SavesDir(%v) = %q, want %q", tt.platform, got, tt.want)
			}
		})
	}
}

func TestSavesDir_UnknownPlatform(t *testing.T) {
	if got := SavesDir(platform.Platform(42)); got != "" {
		t.Errorf("SavesDir(unknown) = %q, want empty", got)
	}
}

func TestMarkerPaths(t *testing.T) {
	update := UpdateMarkerPath()
	crash := CrashMarkerPath()

	if filepath.Dir(update) != LoaderDataDir() {
		t.Errorf("UpdateMarkerPath() = %q, want inside %q", update, LoaderDataDir())
	}
	if filepath.Dir(crash) != LoaderDataDir() {
		t.Errorf("CrashMarkerPath() = %q, want inside %q", crash, LoaderDataDir())
	}
	if update == crash {
		t.Error("marker paths should differ")
	}
}
