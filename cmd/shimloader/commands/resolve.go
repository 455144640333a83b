package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/assembly"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/platform"
)

var (
	resolvePlatform  string
	resolveFramework string
	resolveJSON      bool
)

func init() {
	resolveCmd.Flags().StringVar(&resolvePlatform, "platform", "",
		"resolve for a platform other than the detected one: windows, linux, mac")
	resolveCmd.Flags().StringVar(&resolveFramework, "framework", "",
		"resolve for a framework other than the compiled-in one: prism, polyforge")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false,
		"output the map as JSON")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the assembly compatibility map",
	Long: `Compute and print the assembly compatibility map.

The map lists the assembly reference names that are invalid on the
target platform and framework, and the host binaries searched, in
order, when rewriting a mod's references.

By default the map is computed for the machine shimloader is running
on. Use --platform and --framework to inspect another combination.`,
	Example: `  # Map for this machine
  shimloader resolve

  # Map the Windows build of the legacy framework would use
  shimloader resolve --platform windows --framework prism

  # Machine-readable output
  shimloader resolve --json`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, _ []string) error {
	p, f, err := resolveAxes()
	if err != nil {
		return err
	}

	m, err := assembly.Resolve(p, f)
	if err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}

	if resolveJSON {
		return printMapJSON(cmd, m, f)
	}
	printMapText(cmd, m, f)
	return nil
}

// resolveAxes determines the platform and framework to resolve for,
// honoring the override flags.
func resolveAxes() (platform.Platform, platform.GraphicsFramework, error) {
	p, err := platform.DetectPlatform()
	if resolvePlatform != "" {
		p, err = platform.ParsePlatform(resolvePlatform)
	}
	if err != nil {
		return 0, 0, errors.NewUserError(err, "valid platforms: windows, linux, mac")
	}

	f := platform.DetectedFramework
	if resolveFramework != "" {
		f, err = platform.ParseFramework(resolveFramework)
		if err != nil {
			return 0, 0, errors.NewUserError(err, "valid frameworks: prism, polyforge")
		}
	}
	return p, f, nil
}

func printMapText(cmd *cobra.Command, m *assembly.CompatibilityMap, f platform.GraphicsFramework) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Platform:  %s\n", m.Platform)
	fmt.Fprintf(out, "Framework: %s\n\n", f)

	fmt.Fprintln(out, "Invalid assembly references:")
	for _, ref := range m.InvalidList() {
		fmt.Fprintf(out, "  %s\n", ref)
	}

	fmt.Fprintln(out, "\nSearch targets, in order:")
	for i, target := range m.SearchTargets {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, target.Name, target.File)
	}
}

func printMapJSON(cmd *cobra.Command, m *assembly.CompatibilityMap, f platform.GraphicsFramework) error {
	targets := make([]map[string]string, len(m.SearchTargets))
	for i, target := range m.SearchTargets {
		targets[i] = map[string]string{
			"name": target.Name,
			"file": target.File,
		}
	}
	payload := map[string]any{
		"platform":           m.Platform.String(),
		"framework":          f.String(),
		"invalid_references": m.InvalidList(),
		"search_targets":     targets,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}
