package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/seabright/shimloader/internal/errors"
	"github.com/seabright/shimloader/internal/mods"
)

func sampleScan() *mods.ScanResult {
	return &mods.ScanResult{
		Mods: []*mods.Mod{
			{
				Dir: "/game/Mods/AutoFisher",
				Manifest: &mods.Manifest{
					Name:          "AutoFisher",
					Version:       "0.3.1",
					Author:        "reelgood",
					Description:   "Casts and reels automatically while the minigame is on screen.",
					EntryAssembly: "AutoFisher.dll",
				},
			},
			{
				Dir: "/game/Mods/PumpkinTweaks",
				Manifest: &mods.Manifest{
					Name:          "PumpkinTweaks",
					Version:       "1.2.0",
					EntryAssembly: "PumpkinTweaks.dll",
				},
			},
		},
		Broken: map[string]error{
			"OldMod": errors.New("missing entry_assembly"),
		},
	}
}

func TestOutputModsTabular(t *testing.T) {
	var buf bytes.Buffer
	if err := outputModsTabular(&buf, sampleScan()); err != nil {
		t.Fatalf("outputModsTabular() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"NAME", "AutoFisher", "0.3.1", "PumpkinTweaks", "OldMod", "missing entry_assembly"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOutputModsTabular_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := outputModsTabular(&buf, &mods.ScanResult{}); err != nil {
		t.Fatalf("outputModsTabular() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No mods installed.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestOutputModsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := outputModsJSON(&buf, sampleScan()); err != nil {
		t.Fatalf("outputModsJSON() error = %v", err)
	}

	var output modsListOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(output.Mods) != 2 {
		t.Fatalf("got %d mods, want 2", len(output.Mods))
	}
	if output.Mods[0].Name != "AutoFisher" {
		t.Errorf("first mod = %s, want AutoFisher", output.Mods[0].Name)
	}
	if output.Broken["OldMod"] != "missing entry_assembly" {
		t.Errorf("broken = %v", output.Broken)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten chars here", 22, "exactly ten chars here"},
		{"this is far too long for the column", 10, "this is..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}
