//go:build prism

package platform

// DetectedFramework is the graphics framework this loader build targets.
// The prism build tag produces the legacy-framework loader distribution.
const DetectedFramework = FrameworkPrism
