package doctor

import "fmt"

// Fixer is an optional interface that checks can implement to support
// auto-remediation. Checks that implement Fixer can fix issues they
// detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run().
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool

	// Description explains what was fixed or why it couldn't be fixed.
	Description string

	// Error contains the error if the fix failed.
	Error error
}

// CanFix returns true if Run found a marker to clear.
func (c *CrashMarkerCheck) CanFix() bool {
	return c.stale
}

// Fix clears the stale crash marker.
func (c *CrashMarkerCheck) Fix() []FixResult {
	if !c.stale {
		return nil
	}
	if err := c.Store.ClearCrash(); err != nil {
		return []FixResult{{
			Fixed:       false,
			Description: "failed to clear crash marker",
			Error:       err,
		}}
	}
	c.stale = false
	return []FixResult{{
		Fixed:       true,
		Description: "cleared crash marker from previous session",
	}}
}

// ApplyFixes runs Fix on every registered check that reports fixable
// issues and returns the combined results.
func (r *Runner) ApplyFixes() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		fixer, ok := check.(Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, res := range fixer.Fix() {
			if res.Path == "" {
				res.Path = fmt.Sprintf("check:%s", check.Name())
			}
			results = append(results, res)
		}
	}
	return results
}
