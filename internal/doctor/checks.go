package doctor

import (
	"fmt"
	"os"

	"github.com/seabright/shimloader/internal/assembly"
	"github.com/seabright/shimloader/internal/compat"
	"github.com/seabright/shimloader/internal/config"
	"github.com/seabright/shimloader/internal/game"
	"github.com/seabright/shimloader/internal/markers"
	"github.com/seabright/shimloader/internal/mods"
	"github.com/seabright/shimloader/internal/platform"
)

// PlatformCheck reports the detected platform and graphics framework.
type PlatformCheck struct{}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a new platform detection check.
func NewPlatformCheck() *PlatformCheck {
	return &PlatformCheck{}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform-detection"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run executes the platform detection check and returns its result.
func (c *PlatformCheck) Run() *CheckResult {
	p, err := platform.DetectPlatform()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("unsupported operating system: %v", err),
			FixHint:  "shimloader runs on Windows, Linux, and macOS only",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("running on %s with the %s framework", p, platform.DetectedFramework),
		Details: map[string]any{
			"platform":  p.String(),
			"framework": platform.DetectedFramework.String(),
		},
	}
}

// GameInstallCheck verifies that an Emberfield installation can be located.
type GameInstallCheck struct {
	// GamePath optionally overrides install discovery, usually from config.
	GamePath string

	install *game.Install
}

var _ Check = (*GameInstallCheck)(nil)

// NewGameInstallCheck creates a new game installation check.
func NewGameInstallCheck(gamePath string) *GameInstallCheck {
	return &GameInstallCheck{GamePath: gamePath}
}

// Name returns the unique identifier for this check.
func (c *GameInstallCheck) Name() string {
	return "game-install"
}

// Category returns the grouping for this check.
func (c *GameInstallCheck) Category() string {
	return "game"
}

// Install returns the located installation, or nil if Run has not passed.
func (c *GameInstallCheck) Install() *game.Install {
	return c.install
}

// Run executes the game installation check and returns its result.
func (c *GameInstallCheck) Run() *CheckResult {
	p, err := platform.DetectPlatform()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot detect platform: %v", err),
		}
	}

	inst, err := game.Locate(p, c.GamePath)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("Emberfield not found: %v", err),
			FixHint:  "set game_path in the shimloader config to the game directory",
		}
	}
	c.install = inst

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("found Emberfield at %s", inst.Dir),
		Details:  map[string]any{"dir": inst.Dir},
	}

	version, err := inst.Version()
	if err != nil || version == "" {
		return result
	}
	result.Details["version"] = version

	lookup, err := compat.Lookup(version)
	switch {
	case err != nil:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("game version %q is not a valid version string", version)
	case !lookup.Supported:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("game version %s predates this loader", version)
		result.FixHint = fmt.Sprintf("use ShimLoader %s for this game version", lookup.SuggestedLoader)
	}
	return result
}

// SearchTargetsCheck verifies that every binary the resolver will search
// for the current platform and framework exists in the game directory.
type SearchTargetsCheck struct {
	// Source yields the installation to probe. Evaluated at Run time so
	// the check can follow a GameInstallCheck in the same runner.
	Source func() *game.Install
}

var _ Check = (*SearchTargetsCheck)(nil)

// NewSearchTargetsCheck creates a new search target presence check.
func NewSearchTargetsCheck(source func() *game.Install) *SearchTargetsCheck {
	return &SearchTargetsCheck{Source: source}
}

// Name returns the unique identifier for this check.
func (c *SearchTargetsCheck) Name() string {
	return "search-targets"
}

// Category returns the grouping for this check.
func (c *SearchTargetsCheck) Category() string {
	return "game"
}

// Run executes the search target check and returns its result.
func (c *SearchTargetsCheck) Run() *CheckResult {
	inst := c.Source()
	if inst == nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "skipped: no game installation located",
		}
	}

	m, err := assembly.Resolve(inst.Platform, platform.DetectedFramework)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot resolve compatibility map: %v", err),
		}
	}

	var missing []string
	for _, target := range m.SearchTargets {
		if _, statErr := os.Stat(target.Path(inst.Dir)); statErr != nil {
			missing = append(missing, target.File)
		}
	}

	details := map[string]any{
		"targets": len(m.SearchTargets),
		"missing": missing,
	}
	if len(missing) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d of %d search target binaries missing from %s", len(missing), len(m.SearchTargets), inst.Dir),
			Details:  details,
			FixHint:  "reinstall ShimLoader into the game directory, or verify the game files",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("all %d search target binaries present", len(m.SearchTargets)),
		Details:  details,
	}
}

// ModManifestsCheck scans the mods directory and reports broken manifests.
type ModManifestsCheck struct {
	// Dir yields the directory to scan. Evaluated at Run time; an empty
	// result skips the check.
	Dir func() string
}

var _ Check = (*ModManifestsCheck)(nil)

// NewModManifestsCheck creates a new mod manifest check.
func NewModManifestsCheck(dir func() string) *ModManifestsCheck {
	return &ModManifestsCheck{Dir: dir}
}

// Name returns the unique identifier for this check.
func (c *ModManifestsCheck) Name() string {
	return "mod-manifests"
}

// Category returns the grouping for this check.
func (c *ModManifestsCheck) Category() string {
	return "mods"
}

// Run executes the mod manifest check and returns its result.
func (c *ModManifestsCheck) Run() *CheckResult {
	dir := c.Dir()
	if dir == "" {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "skipped: no game installation located",
		}
	}

	scan, err := mods.Scan(dir)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot scan mods directory: %v", err),
		}
	}

	broken := make(map[string]any, len(scan.Broken))
	for dir, brokenErr := range scan.Broken {
		broken[dir] = brokenErr.Error()
	}
	details := map[string]any{
		"loaded": len(scan.Mods),
		"broken": broken,
	}

	if len(scan.Broken) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("%d mod(s) loaded, %d with broken manifests", len(scan.Mods), len(scan.Broken)),
			Details:  details,
			FixHint:  "run: shimloader mods list to see which manifests failed to parse",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d mod(s) loaded", len(scan.Mods)),
		Details:  details,
	}
}

// ConfigCheck loads and validates the shimloader config file.
type ConfigCheck struct {
	// Path optionally names an explicit config file.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a new config validation check.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{Path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the config check and returns its result.
func (c *ConfigCheck) Run() *CheckResult {
	cfg, err := config.Load(c.Path)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot load config: %v", err),
			FixHint:  "run: shimloader init to write a fresh config",
		}
	}

	if issues := config.Validate(cfg); len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.Error()
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("config has %d problem(s)", len(issues)),
			Details:  map[string]any{"problems": msgs},
			FixHint:  "run: shimloader init to write a fresh config",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "config is valid",
	}
}

// CrashMarkerCheck reports a crash marker left by a previous session.
type CrashMarkerCheck struct {
	// Store reads and clears the marker files.
	Store *markers.Store

	stale bool
}

var _ Check = (*CrashMarkerCheck)(nil)

// NewCrashMarkerCheck creates a new crash marker check.
func NewCrashMarkerCheck(store *markers.Store) *CrashMarkerCheck {
	return &CrashMarkerCheck{Store: store}
}

// Name returns the unique identifier for this check.
func (c *CrashMarkerCheck) Name() string {
	return "crash-marker"
}

// Category returns the grouping for this check.
func (c *CrashMarkerCheck) Category() string {
	return "state"
}

// Run executes the crash marker check and returns its result.
func (c *CrashMarkerCheck) Run() *CheckResult {
	info, err := c.Store.ReadCrash()
	if err != nil {
		c.stale = true
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("crash marker is unreadable: %v", err),
			Fixable:  true,
			FixHint:  "run: shimloader doctor --fix to clear it",
		}
	}
	if info == nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "previous session exited cleanly",
		}
	}

	c.stale = true
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  fmt.Sprintf("previous session (loader %s, %d mods) did not exit cleanly", info.LoaderVersion, info.ModCount),
		Details: map[string]any{
			"loader_version": info.LoaderVersion,
			"started_at":     info.StartedAt,
			"mod_count":      info.ModCount,
		},
		Fixable: true,
		FixHint: "run: shimloader doctor --fix to clear the marker",
	}
}
