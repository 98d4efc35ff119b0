package topology

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTopology(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTopology(t, `
environments:
  local:
    REDIS_HOST: localhost
    REDIS_PORT: 6379
  docker:
    REDIS_HOST: redis
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	local := cfg.Vars("local")
	if local["REDIS_HOST"] != "localhost" {
		t.Fatalf("unexpected REDIS_HOST %q", local["REDIS_HOST"])
	}
	// Numeric scalars are coerced to strings.
	if local["REDIS_PORT"] != "6379" {
		t.Fatalf("expected coerced port string, got %q", local["REDIS_PORT"])
	}

	docker := cfg.Vars("docker")
	if docker["REDIS_HOST"] != "redis" {
		t.Fatalf("unexpected docker REDIS_HOST %q", docker["REDIS_HOST"])
	}
}

func TestVarsUnknownEnvironmentFallsBackToLocal(t *testing.T) {
	path := writeTopology(t, `
environments:
  local:
    API_HOST: localhost
`)

	cfg, _ := Load(path)
	vars := cfg.Vars("staging")
	if vars["API_HOST"] != "localhost" {
		t.Fatalf("expected fallback to local, got %v", vars)
	}
}

func TestLoadMissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
	if vars := cfg.Vars("docker"); vars != nil {
		t.Fatalf("expected nil vars, got %v", vars)
	}
}

func TestLoadMalformedFileIsEmptyConfig(t *testing.T) {
	path := writeTopology(t, "environments: [not, a, mapping\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error for malformed file, got %v", err)
	}
	if len(cfg.Environments) != 0 {
		t.Fatalf("expected empty config, got %v", cfg.Environments)
	}
}
