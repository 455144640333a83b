package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/saves"
)

var savesListJSON bool

func init() {
	savesListCmd.Flags().BoolVar(&savesListJSON, "json", false, "Output in JSON format")
	savesCmd.AddCommand(savesListCmd)
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save backups",
	Long: `List save backups, most recent first.

Examples:
  # List backups
  shimloader saves list

  # Output as JSON
  shimloader saves list --json`,
	RunE: runSavesList,
}

// savesInfoOutput represents a single backup in JSON output.
type savesInfoOutput struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	FileCount     int       `json:"file_count"`
	LoaderVersion string    `json:"loader_version"`
}

func runSavesList(cmd *cobra.Command, _ []string) error {
	mgr, err := savesManager()
	if err != nil {
		return err
	}

	manifests, err := mgr.List()
	if err != nil {
		if errors.Is(err, saves.ErrNoBackupsFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No save backups yet.")
			return nil
		}
		return errors.NewSystemError(err, "check the backup directory permissions")
	}

	if savesListJSON {
		return outputSavesListJSON(cmd.OutOrStdout(), manifests)
	}
	return outputSavesListTabular(cmd.OutOrStdout(), manifests)
}

func outputSavesListJSON(w io.Writer, manifests []saves.Manifest) error {
	output := make([]savesInfoOutput, len(manifests))
	for i, m := range manifests {
		output[i] = savesInfoOutput{
			ID:            m.ID,
			CreatedAt:     m.CreatedAt,
			FileCount:     len(m.Files),
			LoaderVersion: m.LoaderVersion,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding JSON")
}

func outputSavesListTabular(w io.Writer, manifests []saves.Manifest) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILES\tLOADER")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			m.ID,
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			len(m.Files),
			m.LoaderVersion)
	}
	return errors.Wrap(tw.Flush(), "flushing table")
}
