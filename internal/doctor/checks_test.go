package doctor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seabright/shimloader/internal/assembly"
	"github.com/seabright/shimloader/internal/game"
	"github.com/seabright/shimloader/internal/markers"
	"github.com/seabright/shimloader/internal/platform"
)

// fullInstall writes every search target binary for the given platform and
// the compiled-in framework into a temp game dir.
func fullInstall(t *testing.T, p platform.Platform) *game.Install {
	t.Helper()
	dir := t.TempDir()
	m, err := assembly.Resolve(p, platform.DetectedFramework)
	if err != nil {
		t.Fatal(err)
	}
	for _, target := range m.SearchTargets {
		if err := os.WriteFile(target.Path(dir), []byte("MZ"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &game.Install{Dir: dir, Platform: p}
}

func TestSearchTargetsCheck(t *testing.T) {
	inst := fullInstall(t, platform.Linux)

	res := NewSearchTargetsCheck(func() *game.Install { return inst }).Run()
	if res.Status != SeverityPass {
		t.Errorf("Status = %s, want pass: %s", res.Status, res.Message)
	}
}

func TestSearchTargetsCheck_Missing(t *testing.T) {
	inst := fullInstall(t, platform.Linux)
	m, err := assembly.Resolve(platform.Linux, platform.DetectedFramework)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(m.SearchTargets[0].Path(inst.Dir)); err != nil {
		t.Fatal(err)
	}

	res := NewSearchTargetsCheck(func() *game.Install { return inst }).Run()
	if res.Status != SeverityError {
		t.Errorf("Status = %s, want error", res.Status)
	}
	missing, ok := res.Details["missing"].([]string)
	if !ok || len(missing) != 1 {
		t.Fatalf("missing detail = %v", res.Details["missing"])
	}
	if missing[0] != m.SearchTargets[0].File {
		t.Errorf("missing = %q, want %q", missing[0], m.SearchTargets[0].File)
	}
}

func TestSearchTargetsCheck_NoInstall(t *testing.T) {
	res := NewSearchTargetsCheck(func() *game.Install { return nil }).Run()
	if res.Status != SeverityInfo {
		t.Errorf("Status = %s, want info", res.Status)
	}
}

func TestGameInstallCheck(t *testing.T) {
	p, err := platform.DetectPlatform()
	if err != nil {
		t.Skipf("unsupported host OS: %v", err)
	}
	inst := fullInstall(t, p)

	check := NewGameInstallCheck(inst.Dir)
	res := check.Run()
	if res.Status != SeverityPass {
		t.Fatalf("Status = %s, want pass: %s", res.Status, res.Message)
	}
	if check.Install() == nil || check.Install().Dir != inst.Dir {
		t.Error("Install() not populated after passing run")
	}
}

func TestGameInstallCheck_OldGameVersion(t *testing.T) {
	p, err := platform.DetectPlatform()
	if err != nil {
		t.Skipf("unsupported host OS: %v", err)
	}
	inst := fullInstall(t, p)
	if err := os.WriteFile(filepath.Join(inst.Dir, game.VersionFileName), []byte("1.2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := NewGameInstallCheck(inst.Dir).Run()
	if res.Status != SeverityWarning {
		t.Errorf("Status = %s, want warning for unsupported game version", res.Status)
	}
	if res.FixHint == "" {
		t.Error("expected a loader version suggestion in FixHint")
	}
}

func TestModManifestsCheck(t *testing.T) {
	dir := t.TempDir()
	modDir := filepath.Join(dir, "PumpkinTweaks")
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := `name = "PumpkinTweaks"
version = "1.0.0"
entry_assembly = "PumpkinTweaks.dll"
`
	if err := os.WriteFile(filepath.Join(modDir, "manifest.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	res := NewModManifestsCheck(func() string { return dir }).Run()
	if res.Status != SeverityPass {
		t.Errorf("Status = %s, want pass: %s", res.Status, res.Message)
	}
	if res.Details["loaded"] != 1 {
		t.Errorf("loaded = %v, want 1", res.Details["loaded"])
	}
}

func TestModManifestsCheck_Broken(t *testing.T) {
	dir := t.TempDir()
	modDir := filepath.Join(dir, "Broken")
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modDir, "manifest.toml"), []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}

	res := NewModManifestsCheck(func() string { return dir }).Run()
	if res.Status != SeverityWarning {
		t.Errorf("Status = %s, want warning", res.Status)
	}
}

func TestCrashMarkerCheck(t *testing.T) {
	dir := t.TempDir()
	store := markers.NewStore(filepath.Join(dir, "crash.json"), filepath.Join(dir, "update.json"))

	check := NewCrashMarkerCheck(store)
	if res := check.Run(); res.Status != SeverityPass {
		t.Errorf("no marker: Status = %s, want pass", res.Status)
	}
	if check.CanFix() {
		t.Error("CanFix() = true with no marker")
	}

	err := store.WriteCrash(markers.CrashInfo{
		LoaderVersion: "2.1.0",
		StartedAt:     time.Now().UTC(),
		ModCount:      4,
	})
	if err != nil {
		t.Fatal(err)
	}

	res := check.Run()
	if res.Status != SeverityWarning {
		t.Fatalf("stale marker: Status = %s, want warning", res.Status)
	}
	if !res.Fixable || !check.CanFix() {
		t.Fatal("stale marker should be fixable")
	}

	fixes := check.Fix()
	if len(fixes) != 1 || !fixes[0].Fixed {
		t.Fatalf("Fix() = %+v", fixes)
	}
	if res := check.Run(); res.Status != SeverityPass {
		t.Errorf("after fix: Status = %s, want pass", res.Status)
	}
}

func TestRunnerApplyFixes(t *testing.T) {
	dir := t.TempDir()
	store := markers.NewStore(filepath.Join(dir, "crash.json"), filepath.Join(dir, "update.json"))
	if err := store.WriteCrash(markers.CrashInfo{LoaderVersion: "2.1.0"}); err != nil {
		t.Fatal(err)
	}

	r := NewRunner()
	r.AddCheck(&stubCheck{name: "plain", status: SeverityPass})
	r.AddCheck(NewCrashMarkerCheck(store))
	r.Run()

	fixes := r.ApplyFixes()
	if len(fixes) != 1 || !fixes[0].Fixed {
		t.Fatalf("ApplyFixes() = %+v", fixes)
	}

	info, err := store.ReadCrash()
	if err != nil {
		t.Fatal(err)
	}
	if info != nil {
		t.Error("crash marker not cleared")
	}
}
