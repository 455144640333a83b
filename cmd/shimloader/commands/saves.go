package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/paths"
	"github.com/seabright/shimloader/internal/platform"
	"github.com/seabright/shimloader/internal/saves"
)

func init() {
	rootCmd.AddCommand(savesCmd)
	savesCmd.AddCommand(savesBackupCmd)
	savesCmd.AddCommand(savesRestoreCmd)
	savesCmd.AddCommand(savesPruneCmd)
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Back up and restore game saves",
	Long: `Back up and restore Emberfield save files.

Backups are stored under the loader's data directory, one timestamped
folder per backup, and verified with checksums on restore. Old backups
beyond the retention count are removed by prune (and automatically
before each launch when backup_saves is enabled in the config).`,
	Example: `  # Snapshot the saves directory now
  shimloader saves backup

  # List backups
  shimloader saves list

  # Restore a backup over the current saves
  shimloader saves restore 20260830T100712`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// savesManager builds a backup manager honoring the config knobs.
func savesManager() (*saves.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := platform.DetectPlatform()
	if err != nil {
		return nil, errors.NewSystemError(err, "shimloader runs on Windows, Linux, and macOS only")
	}

	opts := []saves.Option{saves.WithLoaderVersion(version)}
	if cfg.SaveBackupCount > 0 {
		opts = append(opts, saves.WithRetentionCount(cfg.SaveBackupCount))
	}
	return saves.NewManager(paths.SavesDir(p), opts...), nil
}

var savesBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the saves directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := savesManager()
		if err != nil {
			return err
		}
		manifest, err := mgr.Backup()
		if err != nil {
			return errors.NewSystemError(err, "check that the game has written at least one save")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d file(s) as %s\n", len(manifest.Files), manifest.ID)
		return nil
	},
}

var savesRestoreCmd = &cobra.Command{
	Use:   "restore <backup-id>",
	Short: "Restore a backup over the current saves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := savesManager()
		if err != nil {
			return err
		}
		if err := mgr.Restore(args[0]); err != nil {
			if errors.Is(err, saves.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Run: shimloader saves list")
			}
			return errors.NewSystemError(err, "the backup may be corrupted; try an older one")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup %s\n", args[0])
		return nil
	},
}

var savesPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove backups beyond the retention count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := savesManager()
		if err != nil {
			return err
		}
		if err := mgr.Prune(); err != nil {
			return errors.NewSystemError(err, "check the backup directory permissions")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned to the %d most recent backup(s)\n", mgr.RetentionCount())
		return nil
	},
}
