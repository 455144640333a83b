package console

import (
	"log/slog"
	"regexp"
)

// Rule classifies raw game output lines. The first matching rule wins.
type Rule struct {
	// Pattern matches the raw line.
	Pattern *regexp.Regexp

	// Level is the log level the line is reported at.
	Level slog.Level

	// Rewrite, when non-empty, replaces the line. Capture group references
	// ($1, $2, ...) are expanded.
	Rewrite string

	// Suppress drops the line entirely. Used for engine noise that would
	// otherwise bury mod output.
	Suppress bool
}

// Classified is the outcome of classifying one line.
type Classified struct {
	// Message is the (possibly rewritten) line.
	Message string

	// Level is the level to report the line at.
	Level slog.Level

	// Suppressed reports whether the line should be dropped.
	Suppressed bool
}

// DefaultRules are the built-in classification rules for Emberfield's
// console output. Order matters: the first match wins, so the more specific
// patterns come first.
func DefaultRules() []Rule {
	return []Rule{
		// Engine noise with no diagnostic value.
		{
			Pattern:  regexp.MustCompile(`^Polyforge: shader cache (miss|rebuild)`),
			Suppress: true,
		},
		{
			Pattern:  regexp.MustCompile(`^Steam overlay injection`),
			Suppress: true,
		},
		// The stock message names an internal code path; tell the user what
		// it actually means.
		{
			Pattern: regexp.MustCompile(`^TypeLoadException: could not load type '([^']+)'`),
			Level:   slog.LevelError,
			Rewrite: "a mod references type '$1' which does not exist in this game build (the mod likely needs an update)",
		},
		{
			Pattern: regexp.MustCompile(`^Netwire: desync detected`),
			Level:   slog.LevelWarn,
			Rewrite: "multiplayer state desynced; the game will resync automatically",
		},
		// Crash-relevant lines surface at error level even when the engine
		// prints them casually.
		{
			Pattern: regexp.MustCompile(`(?i)^unhandled exception`),
			Level:   slog.LevelError,
		},
		{
			Pattern: regexp.MustCompile(`(?i)^warning[:\s]`),
			Level:   slog.LevelWarn,
		},
	}
}

// Classify runs line through the rules. Lines matching no rule pass through
// unchanged at info level.
func Classify(rules []Rule, line string) Classified {
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		if r.Suppress {
			return Classified{Message: line, Suppressed: true}
		}
		msg := line
		if r.Rewrite != "" {
			msg = string(r.Pattern.ExpandString(nil, r.Rewrite, line, m))
		}
		return Classified{Message: msg, Level: r.Level}
	}
	return Classified{Message: line, Level: slog.LevelInfo}
}
