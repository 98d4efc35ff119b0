package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/esystemsdev/fabrix-core/testutil"
)

func TestNew_Defaults(t *testing.T) {
	info := New("fabrix")
	if info.Version != "0.0.0-dev" {
		t.Errorf("expected Version '0.0.0-dev', got %q", info.Version)
	}
	if info.BuildDate != "unknown" {
		t.Errorf("expected BuildDate 'unknown', got %q", info.BuildDate)
	}
	if info.GitCommit != "unknown" {
		t.Errorf("expected GitCommit 'unknown', got %q", info.GitCommit)
	}
	if info.Name != "fabrix" {
		t.Errorf("expected Name 'fabrix', got %q", info.Name)
	}
}

func TestInfo_String(t *testing.T) {
	info := &Info{
		Version:   "1.2.3",
		BuildDate: "2026-01-01",
		GitCommit: "abc123",
		Name:      "fabrix",
	}
	got := info.String()
	expected := "fabrix version 1.2.3 (commit: abc123, built: 2026-01-01)"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestNewCommand_HumanReadable(t *testing.T) {
	info := New("fabrix")
	cmd := NewCommand(info, nil)
	output := testutil.CaptureOutput(t, cmd.Execute)
	for _, want := range []string{"Version", "Build Date", "Git Commit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestNewCommand_JSON(t *testing.T) {
	info := New("fabrix")
	format := "json"
	cmd := NewCommand(info, &format)
	output := testutil.CaptureOutput(t, cmd.Execute)

	var parsed Info
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("expected valid JSON, got error: %v\noutput: %s", err, output)
	}
	if parsed.Version != "0.0.0-dev" {
		t.Errorf("expected version '0.0.0-dev', got %q", parsed.Version)
	}
}

func TestNewCommand_Quiet(t *testing.T) {
	info := New("fabrix")
	cmd := NewCommand(info, nil)
	cmd.SetArgs([]string{"--quiet"})
	output := testutil.CaptureOutput(t, cmd.Execute)
	if trimmed := strings.TrimSpace(output); trimmed != "0.0.0-dev" {
		t.Errorf("expected '0.0.0-dev', got %q", trimmed)
	}
}
