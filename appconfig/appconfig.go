// Package appconfig loads an application's own configuration manifest
// (app.yaml). The manifest supplies the optional inputs of environment
// materialization: a build-time secrets file, a secondary .env output path,
// and the port profile used when rewriting URLs for container topologies.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/esystemsdev/fabrix-core/fileutil"
	"github.com/esystemsdev/fabrix-core/pathutil"
)

// BuildConfig holds build-time settings.
type BuildConfig struct {
	// Secrets is a path to a secrets YAML file, relative to the app directory.
	Secrets string `yaml:"secrets"`
}

// EnvConfig holds environment materialization settings.
type EnvConfig struct {
	// CopyTo is a secondary output path for the materialized .env file,
	// relative to the app directory. A directory target receives a file
	// named .env inside it.
	CopyTo string `yaml:"copyTo"`
}

// App is an application's configuration manifest.
type App struct {
	Name          string      `yaml:"name"`
	Port          int         `yaml:"port"`
	ContainerPort int         `yaml:"containerPort"`
	Build         BuildConfig `yaml:"build"`
	Env           EnvConfig   `yaml:"env"`

	// Dir is the directory the manifest was loaded from.
	Dir string `yaml:"-"`
}

// Load reads app.yaml from the given application directory.
// A missing manifest surfaces as an os.ErrNotExist-wrapped error; callers
// that treat the manifest as optional branch with errors.Is.
func Load(dir string) (*App, error) {
	path := filepath.Join(dir, pathutil.AppConfigFile)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("app config %s: %w", path, err)
	}

	var app App
	if err := fileutil.ReadYAML(path, &app); err != nil {
		return nil, fmt.Errorf("app config %s: %w", path, err)
	}
	app.Dir = dir
	return &app, nil
}

// SecretsPath returns the build secrets file path resolved relative to the
// app directory, or "" when the manifest declares none.
func (a *App) SecretsPath() string {
	if a == nil || a.Build.Secrets == "" {
		return ""
	}
	if filepath.IsAbs(a.Build.Secrets) {
		return filepath.Clean(a.Build.Secrets)
	}
	return filepath.Join(a.Dir, a.Build.Secrets)
}

// CopyToPath returns the secondary .env output path resolved relative to the
// app directory, or "" when the manifest declares none.
func (a *App) CopyToPath() string {
	if a == nil || a.Env.CopyTo == "" {
		return ""
	}
	if filepath.IsAbs(a.Env.CopyTo) {
		return filepath.Clean(a.Env.CopyTo)
	}
	return filepath.Join(a.Dir, a.Env.CopyTo)
}

// RuntimePort returns the port the application listens on inside its
// container: containerPort when set, otherwise port. The second return is
// false when the manifest declares neither.
func (a *App) RuntimePort() (int, bool) {
	if a == nil {
		return 0, false
	}
	if a.ContainerPort > 0 {
		return a.ContainerPort, true
	}
	if a.Port > 0 {
		return a.Port, true
	}
	return 0, false
}
