package assembly

import (
	"sort"

	"github.com/seabright/shimloader/internal/binaries"
	"github.com/seabright/shimloader/internal/platform"
)

// Reference is the logical assembly name a mod binary uses to request a type.
// It is an identifier, not a binary: under some platform/framework
// combinations a Reference has no backing binary at all and must be redirected.
type Reference string

// Assembly reference names that appear in mod binaries.
const (
	// RefLegacyModKit is the loader's pre-rename interface carrier. Mods
	// compiled against old loader versions still reference it.
	RefLegacyModKit Reference = "EmberfieldModKit"

	// RefGameCore is the core game assembly name used on Windows.
	RefGameCore Reference = "Emberfield"

	// RefNetwire is the physics/networking support assembly name used on Windows.
	RefNetwire Reference = "Netwire"

	// RefGameMerged is the merged game assembly name used on Linux and Mac.
	RefGameMerged Reference = "EmberfieldGame"

	// RefPolyforge is the successor framework's consolidated assembly name.
	RefPolyforge Reference = "Polyforge.Framework"

	// Legacy Prism framework module names.
	RefPrismCore     Reference = "Prism"
	RefPrismGame     Reference = "Prism.Game"
	RefPrismGraphics Reference = "Prism.Graphics"
	RefPrismAudio    Reference = "Prism.Audio"
)

// CompatibilityMap describes, for one platform/framework combination, which
// assembly references must be treated as unresolvable and which host binaries
// to search instead.
//
// The map is a value: it is fully populated by Resolve and never mutated
// afterwards. Because its inputs are process-lifetime constants there is no
// caching; callers needing it twice call Resolve twice and get equal results.
type CompatibilityMap struct {
	// Platform is the platform the map was computed for.
	Platform platform.Platform

	// InvalidReferences is the set of assembly names that must not be
	// resolved directly under this platform/framework combination.
	// Membership is what matters; iteration order is not meaningful.
	InvalidReferences map[Reference]struct{}

	// SearchTargets are the binaries to search when resolving a type whose
	// declaring assembly is in InvalidReferences. Order is the priority
	// order: callers must use the first target that defines the requested
	// type, so a type satisfiable by more than one candidate resolves
	// deterministically.
	SearchTargets []*binaries.Binary
}

// Invalid reports whether ref must be treated as unresolvable.
func (m *CompatibilityMap) Invalid(ref Reference) bool {
	_, ok := m.InvalidReferences[ref]
	return ok
}

// InvalidList returns the invalid reference names in sorted order, for
// display and logging.
func (m *CompatibilityMap) InvalidList() []Reference {
	refs := make([]Reference, 0, len(m.InvalidReferences))
	for ref := range m.InvalidReferences {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

func (m *CompatibilityMap) invalidate(refs ...Reference) {
	for _, ref := range refs {
		m.InvalidReferences[ref] = struct{}{}
	}
}

func (m *CompatibilityMap) search(targets ...*binaries.Binary) {
	m.SearchTargets = append(m.SearchTargets, targets...)
}
