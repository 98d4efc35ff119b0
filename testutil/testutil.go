// Package testutil provides shared helpers for tests: an isolated tool home,
// fixture file creation, stdout capture, and temporary directories.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esystemsdev/fabrix-core/pathutil"
)

// Home points the tool home at a fresh temporary directory for the duration
// of the test and returns its path. Tests that read or write the secret
// stores or the topology file call this first so they never touch the real
// ~/.fabrix.
func Home(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(pathutil.EnvHome, home)
	return home
}

// WriteFile creates a fixture file under dir, creating parent directories as
// needed, and returns its path. Secret store fixtures get owner-only
// permissions so the loader's permission check passes.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create fixture directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// CaptureOutput captures stdout during function execution.
// The original stdout is always restored. A non-nil error from fn is logged,
// not fatal, so callers can assert on partial output.
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh
	if fnErr != nil {
		t.Logf("captured function error: %v", fnErr)
	}
	return output
}

// TempDir creates a temporary directory with automatic cleanup.
func TempDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fabrix-test-*")
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("failed to clean up temp directory %s: %v", tmpDir, err)
		}
	})
	return tmpDir
}
