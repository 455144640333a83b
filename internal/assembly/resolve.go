package assembly

import (
	"github.com/seabright/shimloader/internal/binaries"
	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/platform"
)

// Resolve computes the compatibility map for the given platform and framework.
//
// It is total over the closed enumerations: every valid pair produces a map.
// An out-of-range platform or framework value can only come from a detector
// defect, never from user input, so it is returned as an error the caller
// must treat as fatal. There is no fallback map; a wrong topology guess
// corrupts type resolution silently instead of failing cleanly.
//
// Three rule sets merge into the result, in fixed order:
//
//  1. The unconditional loader-rename rule. The loader's interface carrier
//     was renamed from EmberfieldModKit to ShimLoader in a past major
//     version; the old name is invalid everywhere and always redirects to
//     the current loader binary. Applied first, independent of both axes.
//  2. The platform axis: merged (Linux/Mac) versus split (Windows) game
//     binaries.
//  3. The framework axis: consolidated (Polyforge) versus split (Prism)
//     framework binaries.
//
// InvalidReferences is the union of the three sets. SearchTargets is their
// concatenation in the order above; within the platform axis Windows lists
// the physics/networking binary before the core game binary, and within the
// framework axis Prism lists vector-math, game-loop, then sprite-rendering.
func Resolve(p platform.Platform, f platform.GraphicsFramework) (*CompatibilityMap, error) {
	m := &CompatibilityMap{
		Platform:          p,
		InvalidReferences: make(map[Reference]struct{}),
	}

	// Loader-version axis: unconditional.
	m.invalidate(RefLegacyModKit)
	m.search(binaries.Loader)

	// Platform axis.
	switch p {
	case platform.Linux, platform.Mac:
		// The split-binary names do not exist here; both resolve against
		// the merged game binary.
		m.invalidate(RefNetwire, RefGameCore)
		m.search(binaries.GameMerged)
	case platform.Windows:
		// No merged binary exists here; its types are split across the
		// support and core binaries, searched in that order.
		m.invalidate(RefGameMerged)
		m.search(binaries.Netwire, binaries.GameCore)
	default:
		return nil, errors.Wrapf(platform.ErrUnknownPlatform, "%d", int(p))
	}

	// Framework axis.
	switch f {
	case platform.FrameworkPolyforge:
		m.invalidate(RefPrismCore, RefPrismGame, RefPrismGraphics, RefPrismAudio)
		m.search(binaries.Polyforge)
	case platform.FrameworkPrism:
		m.invalidate(RefPolyforge)
		m.search(binaries.PrismCore, binaries.PrismGame, binaries.PrismGraphics)
	default:
		return nil, errors.Wrapf(platform.ErrUnknownFramework, "%d", int(f))
	}

	return m, nil
}
