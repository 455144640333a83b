// Package compat holds the historical game-version to loader-version
// compatibility table.
//
// The loader only supports recent game builds. When a user runs it against an
// older Emberfield install, the startup diagnostics use this table to name
// the last loader release that supported that build, instead of failing with
// an opaque type-load error.
package compat

import (
	"github.com/Masterminds/semver/v3"

	"github.com/seabright/shimloader/internal/errors"
)

// SupportedGames is the game version range the current loader supports.
const SupportedGames = ">=1.6.0"

// Entry maps a historical game version range to the last loader release that
// supported it.
type Entry struct {
	// Games is the semver constraint describing the game versions.
	Games string

	// Loader is the last loader version compatible with those games.
	Loader string
}

// History lists retired game version ranges in ascending order. Ranges must
// not overlap; Lookup returns the first match.
var History = []Entry{
	{Games: "<1.1.0", Loader: "0.9.4"},
	{Games: ">=1.1.0, <1.3.0", Loader: "1.2.6"},
	{Games: ">=1.3.0, <1.6.0", Loader: "1.8.2"},
}

// ErrInvalidVersion indicates a game version string that is not valid semver.
var ErrInvalidVersion = errors.New("invalid game version")

// Result describes how the current loader relates to a game version.
type Result struct {
	// Supported reports whether the current loader supports the game version.
	Supported bool

	// SuggestedLoader names the last loader release supporting the game
	// version when Supported is false. Empty when the version predates all
	// known loader releases or when Supported is true.
	SuggestedLoader string
}

// Lookup classifies a game version against the compatibility table.
func Lookup(gameVersion string) (Result, error) {
	v, err := semver.NewVersion(gameVersion)
	if err != nil {
		return Result{}, errors.Wrapf(ErrInvalidVersion, "%q", gameVersion)
	}

	if mustConstraint(SupportedGames).Check(v) {
		return Result{Supported: true}, nil
	}

	for _, e := range History {
		if mustConstraint(e.Games).Check(v) {
			return Result{SuggestedLoader: e.Loader}, nil
		}
	}

	// A future version outside SupportedGames cannot happen with the open
	// upper bound above; reaching here means a gap in the table.
	return Result{}, nil
}

// mustConstraint parses a table constraint. The table is package data, so a
// parse failure is a programming error.
func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic("compat: bad constraint " + s + ": " + err.Error())
	}
	return c
}
