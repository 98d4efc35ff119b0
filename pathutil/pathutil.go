package pathutil

import (
	"os"
	"path/filepath"
)

// Environment variable names for path configuration.
const (
	// EnvHome overrides the tool home directory.
	EnvHome = "FABRIX_HOME"
)

// Well-known file names inside the tool home.
const (
	// UserSecretsFile is the per-machine, un-versioned secret store.
	UserSecretsFile = "secrets.local.yaml"
	// DefaultSecretsFile is the global default secret store.
	DefaultSecretsFile = "secrets.yaml"
	// TopologyFile maps environment names to host/port variables.
	TopologyFile = "env-config.yaml"
)

// Well-known file names inside an application directory.
const (
	// AppConfigFile is the application's own configuration manifest.
	AppConfigFile = "app.yaml"
	// EnvTemplateFile is the versioned environment template.
	EnvTemplateFile = "env.template"
	// EnvFile is the materialized environment file.
	EnvFile = ".env"
)

// Home returns the tool home directory.
// It honors FABRIX_HOME when set, otherwise defaults to ~/.fabrix.
// The directory is not created; callers that write into it should use
// fileutil.EnsureDir first.
func Home() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory so path joins stay usable.
		return ".fabrix"
	}
	return filepath.Join(userHome, ".fabrix")
}

// UserSecretsPath returns the path of the per-machine secret store.
func UserSecretsPath() string {
	return filepath.Join(Home(), UserSecretsFile)
}

// DefaultSecretsPath returns the path of the global default secret store.
func DefaultSecretsPath() string {
	return filepath.Join(Home(), DefaultSecretsFile)
}

// TopologyPath returns the path of the environment topology config.
func TopologyPath() string {
	return filepath.Join(Home(), TopologyFile)
}

// AppDir returns the directory of a named application under appsDir.
func AppDir(appsDir, appName string) string {
	return filepath.Join(appsDir, appName)
}

// EnvTemplatePath returns the path of an application's env.template.
func EnvTemplatePath(appDir string) string {
	return filepath.Join(appDir, EnvTemplateFile)
}

// EnvFilePath returns the path of an application's materialized .env file.
func EnvFilePath(appDir string) string {
	return filepath.Join(appDir, EnvFile)
}
