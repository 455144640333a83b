package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/config"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/game"
	"github.com/seabright/shimloader/internal/paths"
	"github.com/seabright/shimloader/internal/platform"
	"github.com/seabright/shimloader/pkg/fileutil"
)

var (
	initYes      bool
	initForce    bool
	initGamePath string
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().StringVar(&initGamePath, "game-path", "", "Game directory to record (overrides auto-detection)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize shimloader configuration",
	Long: `Bootstrap shimloader configuration with game auto-detection.

Creates the config file in the user config directory. The game
directory is detected by probing the known install locations; pass
--game-path if the game lives somewhere else.`,
	Example: `  # Initialize with interactive confirmation
  shimloader init

  # Initialize non-interactively, accepting defaults
  shimloader init --yes

  # Record a custom game location
  shimloader init --game-path ~/games/emberfield

  # Force overwrite existing configuration
  shimloader init --force

  See Also: shimloader doctor`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultPath()

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	cfg := config.Default()
	cfg.GamePath = initGamePath
	if cfg.GamePath == "" {
		// Best effort; an empty game_path means launch searches the
		// default locations every time.
		if p, err := platform.DetectPlatform(); err == nil {
			if inst, err := game.Locate(p, ""); err == nil {
				cfg.GamePath = inst.Dir
			}
		}
	}

	if !initYes {
		if cfg.GamePath != "" {
			fmt.Fprintf(out, "Detected game at: %s\n", cfg.GamePath)
		} else {
			fmt.Fprintln(out, "No game installation detected; game_path will be left empty")
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "This will create %s\n", configPath)
		fmt.Fprint(out, "Continue? [Y/n] ")

		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "" && answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := paths.EnsureDir(filepath.Dir(configPath), 0o755); err != nil {
		return errors.NewSystemError(err, "check the config directory permissions")
	}
	if err := fileutil.AtomicWriteYAML(configPath, cfg); err != nil {
		return errors.NewSystemError(err, "check the config directory permissions")
	}

	fmt.Fprintf(out, "Wrote %s\n", configPath)
	return nil
}
