package doctor

import "testing"

// stubCheck returns a fixed result.
type stubCheck struct {
	name   string
	status Severity
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return "test" }
func (c *stubCheck) Run() *CheckResult {
	return &CheckResult{Name: c.name, Category: "test", Status: c.status}
}

func TestRunnerSummary(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "a", status: SeverityPass})
	r.AddCheck(&stubCheck{name: "b", status: SeverityPass})
	r.AddCheck(&stubCheck{name: "c", status: SeverityInfo})
	r.AddCheck(&stubCheck{name: "d", status: SeverityWarning})
	r.AddCheck(&stubCheck{name: "e", status: SeverityError})

	report := r.Run()

	if len(report.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(report.Results))
	}
	want := Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if !report.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}
}

func TestRunnerCleanReport(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "a", status: SeverityPass})

	report := r.Run()

	if report.HasErrors() || report.HasWarnings() {
		t.Errorf("clean report flagged: %+v", report.Summary)
	}
	if report.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityPass:    "pass",
		SeverityInfo:    "info",
		SeverityWarning: "warning",
		SeverityError:   "error",
		Severity(99):    "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
