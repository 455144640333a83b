package commands

import (
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/assembly"
	"github.com/seabright/shimloader/internal/compat"
	"github.com/seabright/shimloader/internal/config"
	"github.com/seabright/shimloader/internal/console"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/game"
	"github.com/seabright/shimloader/internal/logging"
	"github.com/seabright/shimloader/internal/markers"
	"github.com/seabright/shimloader/internal/mods"
	"github.com/seabright/shimloader/internal/paths"
	"github.com/seabright/shimloader/internal/platform"
	"github.com/seabright/shimloader/internal/saves"
)

var (
	launchGamePath string
	launchDryRun   bool
)

func init() {
	launchCmd.Flags().StringVar(&launchGamePath, "game-path", "",
		"game directory (default: config, then known install locations)")
	launchCmd.Flags().BoolVar(&launchDryRun, "dry-run", false,
		"run every pre-flight step but do not start the game")
	rootCmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch Emberfield with mods",
	Long: `Locate the game, load the mods, and start the game process.

Before launching, shimloader computes the assembly compatibility map
for this machine and verifies that every binary the map will search
is present. Mods whose manifests fail to parse, or that require a
newer loader, are skipped with a warning.

The game's console output is relayed through shimloader's log, with
known noise suppressed and known error patterns flagged.`,
	Example: `  # Launch with mods
  shimloader launch

  # Launch a copy of the game outside the default locations
  shimloader launch --game-path ~/games/emberfield

  # Verify the launch would succeed without starting the game
  shimloader launch --dry-run`,
	RunE: runLaunch,
}

func runLaunch(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pctx, err := platform.NewContext()
	if err != nil {
		return errors.NewSystemError(err, "shimloader runs on Windows, Linux, and macOS only")
	}

	gamePath := launchGamePath
	if gamePath == "" {
		gamePath = cfg.GamePath
	}
	inst, err := game.Locate(pctx.Platform, gamePath)
	if err != nil {
		return errors.NewUserError(err, "set game_path in the config, or pass --game-path")
	}
	logger.Info("located game", "dir", inst.Dir, "platform", pctx.Platform.String())

	if err := checkGameVersion(inst, logger); err != nil {
		return err
	}

	m, err := assembly.Resolve(pctx.Platform, pctx.Framework)
	if err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}
	logger.Debug("resolved compatibility map",
		"framework", pctx.Framework.String(),
		"invalid_references", len(m.InvalidReferences),
		"search_targets", len(m.SearchTargets))

	if err := preflight(inst, m); err != nil {
		return err
	}

	modsDir := cfg.ModsPath
	if modsDir == "" {
		modsDir = inst.ModsDir()
	}
	loaded, err := loadMods(modsDir, logger)
	if err != nil {
		return err
	}

	if launchDryRun {
		logger.Info("dry run complete", "mods", len(loaded))
		return nil
	}

	if cfg.BackupSaves {
		backupSaves(cfg, pctx.Platform, logger)
	}

	store := markers.NewStore(paths.CrashMarkerPath(), paths.UpdateMarkerPath())
	if cfg.CheckUpdates {
		reportUpdateMarker(store, logger)
	}

	return runGame(cmd, inst, store, len(loaded), logger)
}

// checkGameVersion fails the launch when the game predates this loader.
// A missing version file is treated as current; old game builds predate it,
// but those are caught by the compatibility table anyway once present.
func checkGameVersion(inst *game.Install, logger *slog.Logger) error {
	gameVersion, err := inst.Version()
	if err != nil || gameVersion == "" {
		return nil
	}
	lookup, err := compat.Lookup(gameVersion)
	if err != nil {
		logger.Warn("game version is not a valid version string", "version", gameVersion)
		return nil
	}
	if !lookup.Supported {
		err := errors.Newf("game version %s is older than this loader supports", gameVersion)
		return errors.NewUserError(err,
			"Use ShimLoader "+lookup.SuggestedLoader+" for this game version")
	}
	return nil
}

// preflight verifies every search target binary exists in the game dir.
func preflight(inst *game.Install, m *assembly.CompatibilityMap) error {
	for _, target := range m.SearchTargets {
		if _, err := os.Stat(target.Path(inst.Dir)); err != nil {
			err = errors.Wrapf(err, "search target %s missing", target.File)
			return errors.NewSystemError(err, "Run: shimloader doctor")
		}
	}
	return nil
}

// loadMods scans the mods directory and drops mods this loader version
// cannot run.
func loadMods(modsDir string, logger *slog.Logger) ([]*mods.Mod, error) {
	scan, err := mods.Scan(modsDir)
	if err != nil {
		return nil, errors.NewSystemError(err, "check the Mods directory permissions")
	}

	for dir, brokenErr := range scan.Broken {
		logger.Warn("skipping mod with broken manifest", "dir", dir, "error", brokenErr.Error())
	}

	loaded := make([]*mods.Mod, 0, len(scan.Mods))
	for _, mod := range scan.Mods {
		ok, err := mod.Manifest.CompatibleWith(version)
		if err != nil {
			logger.Warn("skipping mod with invalid version requirement",
				"mod", mod.Manifest.Name, "error", err.Error())
			continue
		}
		if !ok {
			logger.Warn("skipping mod that requires a newer loader",
				"mod", mod.Manifest.Name,
				"requires", mod.Manifest.MinimumLoaderVersion)
			continue
		}
		logger.Info("loaded mod", "mod", mod.Manifest.Name, "version", mod.Manifest.Version)
		loaded = append(loaded, mod)
	}
	return loaded, nil
}

// backupSaves snapshots the saves directory before the game can touch it.
// Failures never block the launch; a fresh install has no saves yet.
func backupSaves(cfg *config.Config, p platform.Platform, logger *slog.Logger) {
	opts := []saves.Option{saves.WithLoaderVersion(version)}
	if cfg.SaveBackupCount > 0 {
		opts = append(opts, saves.WithRetentionCount(cfg.SaveBackupCount))
	}
	mgr := saves.NewManager(paths.SavesDir(p), opts...)

	manifest, err := mgr.Backup()
	if err != nil {
		logger.Debug("skipping save backup", "error", err.Error())
		return
	}
	logger.Info("backed up saves", "id", manifest.ID, "files", len(manifest.Files))

	if err := mgr.Prune(); err != nil {
		logger.Warn("cannot prune old save backups", "error", err.Error())
	}
}

// reportUpdateMarker surfaces the update check result written by a
// previous session. The marker is advisory; a corrupt one is ignored.
func reportUpdateMarker(store *markers.Store, logger *slog.Logger) {
	info, err := store.ReadUpdate()
	if err != nil || info == nil {
		return
	}
	if info.NewestVersion != "" && info.NewestVersion != version {
		logger.Info("a newer loader is available",
			"current", version, "newest", info.NewestVersion)
	}
}

// runGame starts the game process with the console interceptor attached
// and maintains the crash marker around it.
func runGame(cmd *cobra.Command, inst *game.Install, store *markers.Store, modCount int, logger *slog.Logger) error {
	err := store.WriteCrash(markers.CrashInfo{
		LoaderVersion: version,
		StartedAt:     time.Now().UTC(),
		ModCount:      modCount,
	})
	if err != nil {
		logger.Warn("cannot write crash marker", "error", err.Error())
	}

	interceptor := console.NewInterceptor(logger, console.DefaultRules())
	defer interceptor.Flush()

	proc := exec.CommandContext(cmd.Context(), inst.Executable())
	proc.Dir = inst.Dir
	proc.Stdin = os.Stdin
	proc.Stdout = interceptor
	proc.Stderr = interceptor

	logger.Info("starting game", "exe", inst.Executable(), "mods", modCount)
	if err := proc.Run(); err != nil {
		// Leave the crash marker in place for the next doctor run.
		return errors.NewSystemError(errors.Wrap(err, "game exited abnormally"),
			"Run: shimloader doctor")
	}

	if err := store.ClearCrash(); err != nil {
		logger.Warn("cannot clear crash marker", "error", err.Error())
	}
	logger.Info("game exited cleanly")
	return nil
}
