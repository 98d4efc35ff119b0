package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeApp(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeApp(t, dir, `
name: myapp
port: 3000
containerPort: 8080
build:
  secrets: secrets/build.yaml
env:
  copyTo: ../frontend
`)

	app, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.Name != "myapp" {
		t.Fatalf("unexpected name %q", app.Name)
	}
	if app.Dir != dir {
		t.Fatalf("unexpected dir %q", app.Dir)
	}
	if got := app.SecretsPath(); got != filepath.Join(dir, "secrets", "build.yaml") {
		t.Fatalf("unexpected secrets path %q", got)
	}
	if got := app.CopyToPath(); got != filepath.Join(dir, "..", "frontend") {
		t.Fatalf("unexpected copyTo path %q", got)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRuntimePort(t *testing.T) {
	tests := []struct {
		name   string
		app    *App
		want   int
		wantOK bool
	}{
		{"container port preferred", &App{ContainerPort: 8080, Port: 3000}, 8080, true},
		{"port fallback", &App{Port: 3000}, 3000, true},
		{"neither declared", &App{}, 0, false},
		{"nil app", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.app.RuntimePort()
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestOptionalPathsEmpty(t *testing.T) {
	app := &App{Dir: "/apps/myapp"}
	if app.SecretsPath() != "" {
		t.Fatal("expected empty secrets path")
	}
	if app.CopyToPath() != "" {
		t.Fatal("expected empty copyTo path")
	}
}

func TestAbsolutePathsKept(t *testing.T) {
	app := &App{Dir: "/apps/myapp"}
	app.Build.Secrets = "/etc/fabrix/build.yaml"
	app.Env.CopyTo = "/srv/out"

	if got := app.SecretsPath(); got != "/etc/fabrix/build.yaml" {
		t.Fatalf("unexpected secrets path %q", got)
	}
	if got := app.CopyToPath(); got != "/srv/out" {
		t.Fatalf("unexpected copyTo path %q", got)
	}
}
