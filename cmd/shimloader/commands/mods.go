package commands

import (
	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/game"
	"github.com/seabright/shimloader/internal/mods"
	"github.com/seabright/shimloader/internal/platform"
)

func init() {
	rootCmd.AddCommand(modsCmd)
}

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "Inspect installed mods",
	Long: `Inspect the mods installed in the game's Mods directory.

Each mod lives in its own subdirectory with a manifest.toml naming the
mod and its entry assembly. Directories without a manifest are ignored;
directories with a broken manifest are reported but never loaded.`,
	Example: `  # List installed mods
  shimloader mods list

  # Show one mod's manifest
  shimloader mods show PumpkinTweaks

  # Pick a mod interactively
  shimloader mods show`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// scanModsDir locates the game and scans its mods directory, honoring
// the config overrides shared by the mods subcommands.
func scanModsDir() (*mods.ScanResult, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	modsDir := cfg.ModsPath
	if modsDir == "" {
		p, err := platform.DetectPlatform()
		if err != nil {
			return nil, errors.NewSystemError(err, "shimloader runs on Windows, Linux, and macOS only")
		}
		inst, err := game.Locate(p, cfg.GamePath)
		if err != nil {
			return nil, errors.NewUserError(err, "set game_path in the config, or mods_path directly")
		}
		modsDir = inst.ModsDir()
	}

	scan, err := mods.Scan(modsDir)
	if err != nil {
		return nil, errors.NewSystemError(err, "check the Mods directory permissions")
	}
	return scan, nil
}
