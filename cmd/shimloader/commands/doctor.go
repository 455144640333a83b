package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seabright/shimloader/internal/doctor"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/markers"
	"github.com/seabright/shimloader/internal/paths"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"attempt to fix fixable issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose installation issues",
	Long: `Run diagnostic checks on the shimloader installation.

Verifies platform detection, locates the game, confirms every binary
the assembly resolver will search is present, validates the config
file and mod manifests, and reports crash markers left by a previous
session.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Checks run in registration order; the install-dependent ones read
	// the game check's result lazily.
	gameCheck := doctor.NewGameInstallCheck(cfg.GamePath)
	store := markers.NewStore(paths.CrashMarkerPath(), paths.UpdateMarkerPath())

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewPlatformCheck())
	runner.AddCheck(doctor.NewConfigCheck(cfgFile))
	runner.AddCheck(gameCheck)
	runner.AddCheck(doctor.NewSearchTargetsCheck(gameCheck.Install))
	runner.AddCheck(doctor.NewModManifestsCheck(func() string {
		if cfg.ModsPath != "" {
			return cfg.ModsPath
		}
		if inst := gameCheck.Install(); inst != nil {
			return inst.ModsDir()
		}
		return ""
	}))
	runner.AddCheck(doctor.NewCrashMarkerCheck(store))

	report := runner.Run()

	if doctorFix {
		applyDoctorFixes(cmd, runner, report)
	}

	if err := outputDoctorReport(cmd, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errors.New("errors found"), errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errors.New("warnings found"), errors.ExitUser)
	}
	return nil
}

// applyDoctorFixes runs fixers and folds successful fixes back into the
// summary so the exit code reflects the post-fix state.
func applyDoctorFixes(cmd *cobra.Command, runner *doctor.Runner, report *doctor.Report) {
	fixes := runner.ApplyFixes()
	if len(fixes) == 0 {
		return
	}
	for _, fix := range fixes {
		if fix.Fixed {
			report.Summary.Warnings--
			report.Summary.Passed++
			if !doctorQuiet && !doctorJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "fixed: %s\n", fix.Description)
			}
		} else if !doctorQuiet && !doctorJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "could not fix: %s (%v)\n", fix.Description, fix.Error)
		}
	}
}

func outputDoctorReport(cmd *cobra.Command, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(cmd, report)
	}

	return outputDoctorText(cmd, report)
}

func outputDoctorJSON(cmd *cobra.Command, report *doctor.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(cmd *cobra.Command, report *doctor.Report) error {
	out := cmd.OutOrStdout()

	// In normal mode, show only errors and warnings.
	// In verbose mode, show all checks.
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(out, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(out, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
