package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/esystemsdev/fabrix-core/appconfig"
	"github.com/esystemsdev/fabrix-core/logutil"
	"github.com/esystemsdev/fabrix-core/pathutil"
	"github.com/esystemsdev/fabrix-core/security"
)

// LoadOptions controls which secret store files are consulted.
type LoadOptions struct {
	// Path, when set, names the single secrets file to load; the cascading
	// lookup is skipped entirely.
	Path string
	// App, when set, contributes the application's own build.secrets file to
	// the cascade.
	App *appconfig.App
}

// Load builds a secret store.
//
// With an explicit Path the file must exist (ErrSecretsFileNotFound) and
// parse to a mapping (ErrInvalidFormat).
//
// Otherwise the cascading lookup applies, highest precedence first:
//
//  1. the user store, secrets.local.yaml in the tool home
//  2. the app's build.secrets file, resolved relative to its app.yaml
//  3. the default store, secrets.yaml in the tool home
//
// Files absent from the cascade are skipped; if none exist the load fails
// with ErrNoSecretsFile naming every location that was searched.
func Load(opts LoadOptions) (*Store, error) {
	if opts.Path != "" {
		provider, err := loadProvider(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewStore(*provider), nil
	}

	candidates := []string{pathutil.UserSecretsPath()}
	if buildSecrets := opts.App.SecretsPath(); buildSecrets != "" {
		candidates = append(candidates, buildSecrets)
	}
	candidates = append(candidates, pathutil.DefaultSecretsPath())

	providers := make([]Provider, 0, len(candidates))
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			logutil.Debug("secrets file not present, skipping", "path", path)
			continue
		}
		provider, err := loadProvider(path)
		if err != nil {
			return nil, err
		}
		providers = append(providers, *provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w (searched %s)", ErrNoSecretsFile, strings.Join(candidates, ", "))
	}
	return NewStore(providers...), nil
}

// loadProvider reads and parses one secret store file.
func loadProvider(path string) (*Provider, error) {
	if err := security.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("secrets file %s: %w", path, err)
	}

	// #nosec G304 -- Path validated by security.ValidatePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSecretsFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}

	if err := security.ValidateSecretsFilePermissions(path); err != nil {
		if errors.Is(err, security.ErrInsecureSecretsPermissions) {
			logutil.Warn("secrets file is readable by group/other", "path", path)
		}
	}

	values, err := parseStoreFile(data, path)
	if err != nil {
		return nil, err
	}

	return &Provider{Location: path, Values: values}, nil
}
