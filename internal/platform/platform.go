package platform

import (
	"runtime"

	"github.com/seabright/shimloader/internal/errors"
)

// Platform identifies the operating-system family the host process runs on.
// Exactly one value is active per process; it is detected once at startup and
// never changes afterwards.
type Platform int

const (
	// Windows is the split-binary platform: the game core and its
	// physics/networking support ship as separate binaries.
	Windows Platform = iota

	// Linux is a merged-binary platform: the game ships as a single binary
	// containing both the core and its support types.
	Linux

	// Mac is a merged-binary platform, same layout as Linux.
	Mac
)

// String returns the display name of the platform.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	case Mac:
		return "Mac"
	default:
		return "unknown"
	}
}

// GraphicsFramework identifies which graphics/audio framework the host game
// binary was built against. The value is fixed per loader build (see
// DetectedFramework); it is never probed at runtime.
type GraphicsFramework int

const (
	// FrameworkPrism is the legacy framework. Historically Windows-only,
	// split across four module binaries (core, game loop, graphics, audio).
	FrameworkPrism GraphicsFramework = iota

	// FrameworkPolyforge is the cross-platform successor framework,
	// consolidated into a single binary.
	FrameworkPolyforge
)

// String returns the display name of the framework.
func (f GraphicsFramework) String() string {
	switch f {
	case FrameworkPrism:
		return "Prism"
	case FrameworkPolyforge:
		return "Polyforge"
	default:
		return "unknown"
	}
}

// Sentinel errors for platform detection.
var (
	// ErrUnknownOS indicates the operating system is not one the loader supports.
	ErrUnknownOS = errors.New("unrecognized operating system")

	// ErrUnknownPlatform indicates a Platform value outside the closed enumeration.
	ErrUnknownPlatform = errors.New("unrecognized platform value")

	// ErrUnknownFramework indicates a GraphicsFramework value outside the closed enumeration.
	ErrUnknownFramework = errors.New("unrecognized graphics framework value")
)

// DetectPlatform determines the running platform from the base runtime alone.
// It must not touch any game binary: it runs before the game's binaries are
// loaded so that a missing or misnamed installation can still be reported
// with a friendly message.
//
// An unrecognized operating system is fatal to the caller. There is no safe
// default; guessing wrong would silently corrupt every downstream assembly
// resolution decision.
func DetectPlatform() (Platform, error) {
	return detectPlatform(runtime.GOOS)
}

// detectPlatform maps a GOOS value to a Platform. Split out for testing.
func detectPlatform(goos string) (Platform, error) {
	switch goos {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin":
		return Mac, nil
	default:
		return 0, errors.Wrapf(ErrUnknownOS, "%q", goos)
	}
}

// Valid reports whether p is a member of the closed Platform enumeration.
func (p Platform) Valid() bool {
	switch p {
	case Windows, Linux, Mac:
		return true
	default:
		return false
	}
}

// Valid reports whether f is a member of the closed GraphicsFramework enumeration.
func (f GraphicsFramework) Valid() bool {
	switch f {
	case FrameworkPrism, FrameworkPolyforge:
		return true
	default:
		return false
	}
}

// ParsePlatform converts a user-supplied platform name to a Platform.
// Used by diagnostic commands that explain another platform's topology.
func ParsePlatform(name string) (Platform, error) {
	switch name {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "mac":
		return Mac, nil
	default:
		return 0, errors.Wrapf(ErrUnknownPlatform, "%q (valid: windows, linux, mac)", name)
	}
}

// ParseFramework converts a user-supplied framework name to a GraphicsFramework.
func ParseFramework(name string) (GraphicsFramework, error) {
	switch name {
	case "prism":
		return FrameworkPrism, nil
	case "polyforge":
		return FrameworkPolyforge, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFramework, "%q (valid: prism, polyforge)", name)
	}
}

// PlatformNames returns the accepted platform flag values in deterministic order.
func PlatformNames() []string {
	return []string{"windows", "linux", "mac"}
}

// FrameworkNames returns the accepted framework flag values in deterministic order.
func FrameworkNames() []string {
	return []string{"prism", "polyforge"}
}
