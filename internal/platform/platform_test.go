package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestDetectPlatform_KnownGOOS(t *testing.T) {
	tests := []struct {
		name string
		goos string
		want Platform
	}{
		{name: "windows", goos: "windows", want: Windows},
		{name: "linux", goos: "linux", want: Linux},
		{name: "darwin maps to Mac", goos: "darwin", want: Mac},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectPlatform(tt.goos)
			if err != nil {
				t.Fatalf("detectPlatform(%q) error = %v, want nil", tt.goos, err)
			}
			if got != tt.want {
				t.Errorf("detectPlatform(%q) = %v, want %v", tt.goos, got, tt.want)
			}
		})
	}
}

func TestDetectPlatform_UnknownGOOS(t *testing.T) {
	tests := []struct {
		name string
		goos string
	}{
		{name: "bsd", goos: "freebsd"},
		{name: "mobile", goos: "android"},
		{name: "empty", goos: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := detectPlatform(tt.goos)
			if err == nil {
				t.Fatalf("detectPlatform(%q) error = nil, want error", tt.goos)
			}
			if !errors.Is(err, ErrUnknownOS) {
				t.Errorf("detectPlatform(%q) error = %v, want ErrUnknownOS", tt.goos, err)
			}
		})
	}
}

func TestDetectPlatform_CurrentGOOS(t *testing.T) {
	// The test host itself must be a supported platform.
	switch runtime.GOOS {
	case "windows", "linux", "darwin":
	default:
		t.Skipf("unsupported test host %q", runtime.GOOS)
	}

	got, err := DetectPlatform()
	if err != nil {
		t.Fatalf("DetectPlatform() error = %v", err)
	}
	if !got.Valid() {
		t.Errorf("DetectPlatform() = %v, not a valid Platform", got)
	}
}

func TestPlatform_String(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{Windows, "Windows"},
		{Linux, "Linux"},
		{Mac, "Mac"},
		{Platform(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.platform.String(); got != tt.want {
			t.Errorf("Platform(%d).String() = %q, want %q", int(tt.platform), got, tt.want)
		}
	}
}

func TestGraphicsFramework_String(t *testing.T) {
	tests := []struct {
		framework GraphicsFramework
		want      string
	}{
		{FrameworkPrism, "Prism"},
		{FrameworkPolyforge, "Polyforge"},
		{GraphicsFramework(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.framework.String(); got != tt.want {
			t.Errorf("GraphicsFramework(%d).String() = %q, want %q", int(tt.framework), got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Windows.Valid() || !Linux.Valid() || !Mac.Valid() {
		t.Error("all enumeration members should be valid")
	}
	if Platform(99).Valid() {
		t.Error("Platform(99).Valid() = true, want false")
	}
	if !FrameworkPrism.Valid() || !FrameworkPolyforge.Valid() {
		t.Error("all framework members should be valid")
	}
	if GraphicsFramework(99).Valid() {
		t.Error("GraphicsFramework(99).Valid() = true, want false")
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Platform
		wantErr bool
	}{
		{name: "windows", input: "windows", want: Windows},
		{name: "linux", input: "linux", want: Linux},
		{name: "mac", input: "mac", want: Mac},
		{name: "case sensitive", input: "Windows", wantErr: true},
		{name: "goos spelling rejected", input: "darwin", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlatform(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePlatform(%q) error = nil, want error", tt.input)
				}
				if !errors.Is(err, ErrUnknownPlatform) {
					t.Errorf("ParsePlatform(%q) error = %v, want ErrUnknownPlatform", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatform(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    GraphicsFramework
		wantErr bool
	}{
		{name: "prism", input: "prism", want: FrameworkPrism},
		{name: "polyforge", input: "polyforge", want: FrameworkPolyforge},
		{name: "unknown", input: "vulkan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFramework(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFramework) {
					t.Errorf("ParseFramework(%q) error = %v, want ErrUnknownFramework", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFramework(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFramework(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewContext(t *testing.T) {
	switch runtime.GOOS {
	case "windows", "linux", "darwin":
	default:
		t.Skipf("unsupported test host %q", runtime.GOOS)
	}

	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	if !ctx.Platform.Valid() {
		t.Errorf("NewContext().Platform = %v, not valid", ctx.Platform)
	}
	if ctx.Framework != DetectedFramework {
		t.Errorf("NewContext().Framework = %v, want %v", ctx.Framework, DetectedFramework)
	}
}
