// Package paths centralizes file system path computation for the loader.
//
// It resolves XDG base directories via the adrg/xdg library and layers the
// loader's own directories on top: config under ConfigHome, state (markers,
// logs) under DataHome. It also encodes the per-platform tables for where the
// game is typically installed and where it keeps save files.
//
// All functions return computed paths without touching the file system,
// except [EnsureDir], which creates directories. Existence checks belong to
// the callers (doctor, launch pre-flight).
package paths
