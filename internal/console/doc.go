// Package console classifies and rewrites the game's raw console output.
//
// Emberfield prints everything to stdout at the same priority: engine noise,
// real warnings, and crash-relevant errors all look alike. The rules in this
// package suppress known noise, raise known-bad lines to warning or error
// level, and rewrite messages that name internal code paths into something a
// mod user can act on.
//
// The rules are plain regular expressions applied first-match-wins; they are
// string processing only and never affect how the game or its mods run.
package console
