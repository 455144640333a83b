package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seabright/shimloader/internal/binaries"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/platform"
)

func fakeInstall(t *testing.T, p platform.Platform) string {
	t.Helper()
	dir := t.TempDir()
	bin := PrimaryBinary(p)
	if err := os.WriteFile(bin.Path(dir), []byte("MZ"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestPrimaryBinary(t *testing.T) {
	if got := PrimaryBinary(platform.Windows); got != binaries.GameCore {
		t.Errorf("Windows primary = %s, want %s", got.Name, binaries.GameCore.Name)
	}
	for _, p := range []platform.Platform{platform.Linux, platform.Mac} {
		if got := PrimaryBinary(p); got != binaries.GameMerged {
			t.Errorf("%s primary = %s, want %s", p, got.Name, binaries.GameMerged.Name)
		}
	}
}

func TestLocateOverride(t *testing.T) {
	dir := fakeInstall(t, platform.Linux)

	inst, err := Locate(platform.Linux, dir)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if inst.Dir != dir {
		t.Errorf("Dir = %q, want %q", inst.Dir, dir)
	}
}

func TestLocateOverrideMissingBinary(t *testing.T) {
	_, err := Locate(platform.Linux, t.TempDir())
	if !errors.Is(err, errors.ErrGameNotFound) {
		t.Errorf("error = %v, want ErrGameNotFound", err)
	}
}

func TestLocateNoCandidates(t *testing.T) {
	// None of the well-known locations exist in a test environment.
	_, err := Locate(platform.Linux, "")
	if !errors.Is(err, errors.ErrGameNotFound) {
		t.Errorf("error = %v, want ErrGameNotFound", err)
	}
}

func TestVersion(t *testing.T) {
	dir := fakeInstall(t, platform.Mac)
	inst := &Install{Dir: dir, Platform: platform.Mac}

	v, err := inst.Version()
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v != "" {
		t.Errorf("missing version file should yield empty version, got %q", v)
	}

	if err := os.WriteFile(filepath.Join(dir, VersionFileName), []byte("1.6.15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err = inst.Version()
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v != "1.6.15" {
		t.Errorf("Version() = %q, want %q", v, "1.6.15")
	}
}

func TestModsDir(t *testing.T) {
	inst := &Install{Dir: "/games/Emberfield", Platform: platform.Linux}
	want := filepath.Join("/games/Emberfield", "Mods")
	if got := inst.ModsDir(); got != want {
		t.Errorf("ModsDir() = %q, want %q", got, want)
	}
}
