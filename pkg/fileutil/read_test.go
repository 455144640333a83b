package fileutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileWithLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.toml")
	want := []byte("name = \"PumpkinTweaks\"\n")
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFileWithLimit(path)
	if err != nil {
		t.Fatalf("ReadFileWithLimit() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("ReadFileWithLimit() on missing file should fail")
	}
}

func TestReadFileWithLimit_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge")
	if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := ReadFileWithLimit(path)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}
