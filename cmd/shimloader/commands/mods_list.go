package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/mods"
)

var modsListJSON bool

func init() {
	modsListCmd.Flags().BoolVar(&modsListJSON, "json", false, "Output in JSON format")
	modsCmd.AddCommand(modsListCmd)
}

var modsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods",
	Long: `List the mods found in the game's Mods directory.

Broken manifests are listed separately so a single bad mod never hides
the rest.

Examples:
  # List all mods
  shimloader mods list

  # Output as JSON
  shimloader mods list --json`,
	RunE: runModsList,
}

// modsListOutput represents the JSON output format for mods list.
type modsListOutput struct {
	Mods   []modInfoJSON     `json:"mods"`
	Broken map[string]string `json:"broken,omitempty"`
}

// modInfoJSON represents a mod in JSON output format.
type modInfoJSON struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

func runModsList(cmd *cobra.Command, _ []string) error {
	scan, err := scanModsDir()
	if err != nil {
		return err
	}

	if modsListJSON {
		return outputModsJSON(cmd.OutOrStdout(), scan)
	}
	return outputModsTabular(cmd.OutOrStdout(), scan)
}

func outputModsJSON(w io.Writer, scan *mods.ScanResult) error {
	output := modsListOutput{
		Mods: make([]modInfoJSON, len(scan.Mods)),
	}
	for i, mod := range scan.Mods {
		output.Mods[i] = modInfoJSON{
			Name:        mod.Manifest.Name,
			Version:     mod.Manifest.Version,
			Author:      mod.Manifest.Author,
			Description: mod.Manifest.Description,
		}
	}
	if len(scan.Broken) > 0 {
		output.Broken = make(map[string]string, len(scan.Broken))
		for dir, err := range scan.Broken {
			output.Broken[dir] = err.Error()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding JSON")
}

func outputModsTabular(w io.Writer, scan *mods.ScanResult) error {
	if len(scan.Mods) == 0 && len(scan.Broken) == 0 {
		fmt.Fprintln(w, "No mods installed.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tAUTHOR\tDESCRIPTION")
	for _, mod := range scan.Mods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			mod.Manifest.Name,
			mod.Manifest.Version,
			mod.Manifest.Author,
			truncate(mod.Manifest.Description, 60))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flushing table")
	}

	if len(scan.Broken) > 0 {
		fmt.Fprintf(w, "\n%d mod(s) with broken manifests:\n", len(scan.Broken))
		for dir, err := range scan.Broken {
			fmt.Fprintf(w, "  %s: %v\n", dir, err)
		}
	}
	return nil
}
