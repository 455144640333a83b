package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seabright/shimloader/internal/saves"
)

func sampleManifests() []saves.Manifest {
	return []saves.Manifest{
		{
			ID:            "20260830T101500",
			CreatedAt:     time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC),
			LoaderVersion: "2.1.0",
			Files:         []saves.File{{RelPath: "Willowmere/save.dat"}},
		},
		{
			ID:            "20260829T090000",
			CreatedAt:     time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
			LoaderVersion: "2.0.3",
			Files:         []saves.File{{RelPath: "Willowmere/save.dat"}, {RelPath: "Willowmere/player.dat"}},
		},
	}
}

func TestOutputSavesListTabular(t *testing.T) {
	var buf bytes.Buffer
	if err := outputSavesListTabular(&buf, sampleManifests()); err != nil {
		t.Fatalf("outputSavesListTabular() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "20260830T101500", "20260829T090000", "2.1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOutputSavesListJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := outputSavesListJSON(&buf, sampleManifests()); err != nil {
		t.Fatalf("outputSavesListJSON() error = %v", err)
	}

	var output []savesInfoOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(output) != 2 {
		t.Fatalf("got %d entries, want 2", len(output))
	}
	if output[1].FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", output[1].FileCount)
	}
}
