package pathutil

import (
	"path/filepath"
	"testing"
)

func TestHomeHonorsEnvOverride(t *testing.T) {
	t.Setenv(EnvHome, "/opt/fabrix-home")

	if got := Home(); got != "/opt/fabrix-home" {
		t.Fatalf("expected FABRIX_HOME override, got %q", got)
	}
}

func TestHomeDefaultsToDotFabrix(t *testing.T) {
	t.Setenv(EnvHome, "")
	t.Setenv("HOME", "/home/builder")

	want := filepath.Join("/home/builder", ".fabrix")
	if got := Home(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWellKnownPaths(t *testing.T) {
	t.Setenv(EnvHome, "/fx")

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"user secrets", UserSecretsPath(), "/fx/secrets.local.yaml"},
		{"default secrets", DefaultSecretsPath(), "/fx/secrets.yaml"},
		{"topology", TopologyPath(), "/fx/env-config.yaml"},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, tc.got)
		}
	}
}

func TestAppPaths(t *testing.T) {
	appDir := AppDir("/ws/apps", "myapp")
	if appDir != filepath.Join("/ws/apps", "myapp") {
		t.Fatalf("unexpected app dir %q", appDir)
	}

	if got := EnvTemplatePath(appDir); got != filepath.Join(appDir, "env.template") {
		t.Fatalf("unexpected template path %q", got)
	}
	if got := EnvFilePath(appDir); got != filepath.Join(appDir, ".env") {
		t.Fatalf("unexpected env path %q", got)
	}
}
