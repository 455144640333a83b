//go:build !prism

package platform

// DetectedFramework is the graphics framework this loader build targets.
// Selected at build time: the loader ships in framework-specific builds, so
// this is a build parameter rather than a runtime probe. Probing would require
// loading the very binaries whose absence must produce a friendly error.
const DetectedFramework = FrameworkPolyforge
