// Package assembly computes which assembly references a mod binary may carry
// that are invalid under the running platform and framework, and which host
// binaries should satisfy them instead.
//
// Emberfield's binary topology differs per platform: Windows ships the core
// game ("Emberfield") and its physics/networking support ("Netwire") as
// separate binaries, while Linux and Mac ship a single merged binary
// ("EmberfieldGame") containing both. The graphics framework adds a second
// axis: legacy Prism builds split the framework across four module binaries,
// while Polyforge builds consolidate it into one. A mod is compiled against
// exactly one of these layouts and must load on all of them.
//
// [Resolve] is the topology table that encodes this knowledge. It is a pure
// function of (platform, framework): it allocates a fresh map on every call,
// holds no state, and is safe for concurrent use. It never checks whether the
// candidate binaries exist; that verification belongs to the doctor and the
// launch pre-flight, which know which mod and which type were being resolved
// and can report an actionable message.
//
// # Rewriter Contract
//
// The assembly rewriter consuming a [CompatibilityMap] must, for every type
// reference whose declaring assembly name is in the invalid set, try each
// entry of SearchTargets in order and use the first candidate that defines a
// type of that name. If none match, the failure is mod-specific and must be
// reported as such, not as a loader fault.
package assembly
