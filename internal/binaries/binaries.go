// Package binaries defines handles for the host binaries the loader knows
// about.
//
// A Binary is an opaque handle, not a loaded image: it names a binary and the
// file it ships in. The set of handles is owned by the host process; consumers
// such as the assembly resolver hold read references only and never load,
// unload, or mutate them. Whether a binary actually exists on disk is checked
// by the doctor and the launch pre-flight, never here.
package binaries

import "path/filepath"

// Binary is a handle to a host binary known to contain types that mods may
// request under a different assembly name.
type Binary struct {
	// Name is the assembly identity the binary carries.
	Name string

	// File is the binary's file name inside the game directory.
	File string
}

// Path returns the expected on-disk location of the binary inside gameDir.
func (b *Binary) Path(gameDir string) string {
	return filepath.Join(gameDir, b.File)
}

// Well-known host binaries. Pointer identity is meaningful: the resolver
// returns these exact handles, and tests assert against them.
var (
	// Loader is the loader's own public-interfaces binary. Mods compiled
	// against the pre-rename loader API resolve their types here.
	Loader = &Binary{Name: "ShimLoader", File: "ShimLoader.dll"}

	// GameMerged is the single merged game binary shipped on Linux and Mac.
	// It contains both the core game types and the Netwire support types.
	GameMerged = &Binary{Name: "EmberfieldGame", File: "EmberfieldGame.dll"}

	// GameCore is the core game binary shipped on Windows.
	GameCore = &Binary{Name: "Emberfield", File: "Emberfield.dll"}

	// Netwire is the physics/networking support binary shipped on Windows.
	Netwire = &Binary{Name: "Netwire", File: "Netwire.dll"}

	// Polyforge is the consolidated vector-math/graphics binary of the
	// successor framework.
	Polyforge = &Binary{Name: "Polyforge.Framework", File: "Polyforge.Framework.dll"}

	// PrismCore carries the legacy framework's vector-math and graphics
	// primitives.
	PrismCore = &Binary{Name: "Prism", File: "Prism.dll"}

	// PrismGame carries the legacy framework's game-loop types.
	PrismGame = &Binary{Name: "Prism.Game", File: "Prism.Game.dll"}

	// PrismGraphics carries the legacy framework's sprite-rendering types.
	PrismGraphics = &Binary{Name: "Prism.Graphics", File: "Prism.Graphics.dll"}
)
