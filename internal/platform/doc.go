// Package platform determines which operating system and graphics framework
// the loader is running under.
//
// The two values drive every downstream assembly-resolution decision, so they
// are computed once per process, before any game binary or mod is loaded, and
// are immutable afterwards.
//
// # Platform Detection
//
// [DetectPlatform] inspects the base runtime only (runtime.GOOS). It never
// touches a game binary: the loader must be able to report "platform = Linux,
// framework = Polyforge, but required binaries not found" even when the game
// installation is missing or misnamed.
//
// # Framework Selection
//
// [DetectedFramework] is a compile-time constant chosen by build tag. The
// default build targets [FrameworkPolyforge]; building with -tags prism
// produces the legacy [FrameworkPrism] loader. The framework is a property of
// the loader distribution, not of the machine it runs on, so it is never
// probed at runtime.
//
// # Failure Policy
//
// An operating system outside the supported set is a fatal error. There is no
// safe default platform: a wrong guess corrupts assembly resolution silently
// instead of failing loudly.
package platform
