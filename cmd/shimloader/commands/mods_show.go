package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/mods"
)

func init() {
	modsCmd.AddCommand(modsShowCmd)
}

var modsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one mod's manifest",
	Long: `Show the full manifest of an installed mod.

With no argument, opens an interactive fuzzy picker over the installed
mods.

Examples:
  # Show a mod by name
  shimloader mods show PumpkinTweaks

  # Pick interactively
  shimloader mods show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModsShow,
}

func runModsShow(cmd *cobra.Command, args []string) error {
	scan, err := scanModsDir()
	if err != nil {
		return err
	}

	var mod *mods.Mod
	if len(args) == 1 {
		mod, err = scan.Find(args[0])
		if err != nil {
			return errors.NewUserError(err, "Run: shimloader mods list")
		}
	} else {
		mod, err = pickMod(scan)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	m := mod.Manifest
	fmt.Fprintf(out, "Name:           %s\n", m.Name)
	fmt.Fprintf(out, "Version:        %s\n", m.Version)
	if m.Author != "" {
		fmt.Fprintf(out, "Author:         %s\n", m.Author)
	}
	if m.Description != "" {
		fmt.Fprintf(out, "Description:    %s\n", m.Description)
	}
	fmt.Fprintf(out, "Entry assembly: %s\n", m.EntryAssembly)
	if m.MinimumLoaderVersion != "" {
		fmt.Fprintf(out, "Needs loader:   >= %s\n", m.MinimumLoaderVersion)
	}
	fmt.Fprintf(out, "Directory:      %s\n", mod.Dir)
	return nil
}

// pickMod opens a fuzzy finder over the scanned mods.
func pickMod(scan *mods.ScanResult) (*mods.Mod, error) {
	if len(scan.Mods) == 0 {
		return nil, errors.NewUserError(errors.New("no mods installed"),
			"Drop mods into the game's Mods directory first")
	}

	idx, err := fuzzyfinder.Find(
		scan.Mods,
		func(i int) string {
			return fmt.Sprintf("%s %s", scan.Mods[i].Manifest.Name, scan.Mods[i].Manifest.Version)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			m := scan.Mods[i].Manifest
			return fmt.Sprintf("Name: %s\nVersion: %s\nAuthor: %s\n\nDescription:\n%s",
				m.Name,
				m.Version,
				m.Author,
				m.Description,
			)
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "picking mod")
	}
	return scan.Mods[idx], nil
}
