package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{
			name: "successful write",
			data: []byte("hello world\n"),
			perm: 0644,
		},
		{
			name: "empty data",
			data: []byte{},
			perm: 0644,
		},
		{
			name: "binary data",
			data: []byte{0x00, 0x01, 0x02, 0xFF},
			perm: 0600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.bin")
			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %v, want %v", got, tt.data)
			}

			if runtime.GOOS != "windows" {
				info, err := os.Stat(path)
				if err != nil {
					t.Fatalf("Stat() error = %v", err)
				}
				if info.Mode().Perm() != tt.perm {
					t.Errorf("perm = %v, want %v", info.Mode().Perm(), tt.perm)
				}
			}
		})
	}
}

func TestAtomicWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker")
	if err := AtomicWriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() second write error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestAtomicWriteFile_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".shimloader-atomic-") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.json")
	payload := map[string]any{"version": "2.3.0", "clean_exit": true}

	if err := AtomicWriteJSON(path, payload); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("JSON output missing trailing newline")
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["version"] != "2.3.0" {
		t.Errorf("version = %v, want 2.3.0", got["version"])
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := map[string]any{"developer_mode": true}

	if err := AtomicWriteYAML(path, payload); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if got["developer_mode"] != true {
		t.Errorf("developer_mode = %v, want true", got["developer_mode"])
	}
}

func TestAtomicWriteJSON_UnmarshalableValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := AtomicWriteJSON(path, func() {}); err == nil {
		t.Error("AtomicWriteJSON() with a func value should fail")
	}
}
