package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	if err := AtomicWriteFile(path, []byte("KEY=value\n"), SecretFilePermission); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "KEY=value\n" {
		t.Fatalf("unexpected content %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != SecretFilePermission {
			t.Fatalf("expected mode %o, got %o", SecretFilePermission, info.Mode().Perm())
		}
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only target file in dir, got %d entries", len(entries))
	}
}

func TestAtomicWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.yaml")

	if err := AtomicWriteFile(path, []byte("a: 1\n"), SecretFilePermission); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("a: 2\n"), SecretFilePermission); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "a: 2\n" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestReadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("name: myapp\nport: 8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	}
	if err := ReadYAML(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "myapp" || cfg.Port != 8080 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestReadYAMLMissingFile(t *testing.T) {
	var out map[string]string
	if err := ReadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &out); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnsureDirAndExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsDir(nested) {
		t.Fatal("expected directory to exist")
	}

	if FileExists(nested, "missing.txt") {
		t.Fatal("did not expect file to exist")
	}
	if err := os.WriteFile(filepath.Join(nested, "present.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(nested, "present.txt") {
		t.Fatal("expected file to exist")
	}
	if !PathExists(filepath.Join(nested, "present.txt")) {
		t.Fatal("expected path to exist")
	}
}
