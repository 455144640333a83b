package mods

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loadererrors "github.com/seabright/shimloader/internal/errors"
)

func writeMod(t *testing.T, modsDir, dirName, manifest string) {
	t.Helper()
	dir := filepath.Join(modsDir, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o644))
}

func TestScan(t *testing.T) {
	modsDir := t.TempDir()

	writeMod(t, modsDir, "pumpkin-tweaks", `
name = "PumpkinTweaks"
version = "1.4.0"
entry_assembly = "PumpkinTweaks.dll"
`)
	writeMod(t, modsDir, "auto-fisher", `
name = "AutoFisher"
version = "0.3.1"
entry_assembly = "AutoFisher.dll"
`)

	// A loose asset folder without a manifest is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(modsDir, "shared-textures"), 0o755))

	// A stray file at the top level is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(modsDir, "readme.txt"), []byte("hi"), 0o644))

	result, err := Scan(modsDir)
	require.NoError(t, err)

	require.Len(t, result.Mods, 2)
	assert.Empty(t, result.Broken)

	// Sorted by manifest name.
	assert.Equal(t, "AutoFisher", result.Mods[0].Manifest.Name)
	assert.Equal(t, "PumpkinTweaks", result.Mods[1].Manifest.Name)

	assert.Equal(t,
		filepath.Join(modsDir, "auto-fisher", "AutoFisher.dll"),
		result.Mods[0].EntryPath())
}

func TestScan_BrokenModIsIsolated(t *testing.T) {
	modsDir := t.TempDir()

	writeMod(t, modsDir, "good-mod", `
name = "GoodMod"
version = "1.0.0"
entry_assembly = "GoodMod.dll"
`)
	writeMod(t, modsDir, "broken-mod", `name = `)

	result, err := Scan(modsDir)
	require.NoError(t, err)

	require.Len(t, result.Mods, 1)
	assert.Equal(t, "GoodMod", result.Mods[0].Manifest.Name)

	require.Contains(t, result.Broken, "broken-mod")
	assert.Error(t, result.Broken["broken-mod"])
}

func TestScan_MissingDirIsEmpty(t *testing.T) {
	result, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, result.Mods)
	assert.Empty(t, result.Broken)
}

func TestFind(t *testing.T) {
	modsDir := t.TempDir()
	writeMod(t, modsDir, "pumpkin-tweaks", `
name = "PumpkinTweaks"
version = "1.4.0"
entry_assembly = "PumpkinTweaks.dll"
`)

	result, err := Scan(modsDir)
	require.NoError(t, err)

	mod, err := result.Find("PumpkinTweaks")
	require.NoError(t, err)
	assert.Equal(t, "PumpkinTweaks", mod.Manifest.Name)

	_, err = result.Find("Nope")
	assert.ErrorIs(t, err, loadererrors.ErrModNotFound)
}
