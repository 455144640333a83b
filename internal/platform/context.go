package platform

// Context carries the process-lifetime platform facts: which operating system
// the loader is running on and which graphics framework this loader build
// targets. It is constructed exactly once at process start, before any mod is
// loaded, and passed by value to every consumer. It is never mutated.
type Context struct {
	// Platform is the detected operating-system family.
	Platform Platform

	// Framework is the graphics framework baked into this loader build.
	Framework GraphicsFramework
}

// NewContext detects the running platform and pairs it with the build-time
// framework selection. It fails if the operating system is unrecognized;
// callers must treat that as fatal.
func NewContext() (Context, error) {
	p, err := DetectPlatform()
	if err != nil {
		return Context{}, err
	}
	return Context{
		Platform:  p,
		Framework: DetectedFramework,
	}, nil
}
