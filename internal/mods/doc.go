// Package mods discovers and validates installed mods.
//
// A mod is a directory under the game's Mods folder containing a
// manifest.toml describing the mod and naming its entry assembly. Scanning is
// tolerant: directories without a manifest are ignored, and a mod whose
// manifest fails to parse or validate is reported as broken rather than
// aborting the scan, so one bad download never blocks the rest of the
// session.
package mods
