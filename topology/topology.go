// Package topology loads the environment topology config (env-config.yaml):
// a mapping from runtime environment names (local, docker, ...) to the
// host/port substitution variables used when resolving env templates.
//
// Topology resolution is best-effort by design: a missing or unreadable file
// yields an empty config rather than an error, and unknown environment names
// fall back to "local".
package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esystemsdev/fabrix-core/logutil"
)

// LocalEnvironment is the environment every unknown name falls back to.
const LocalEnvironment = "local"

// Config maps environment names to flat variable maps.
type Config struct {
	Environments map[string]map[string]string
}

// rawConfig mirrors the on-disk document. Values are decoded as any so that
// numeric YAML scalars (ports, counts) can be coerced to strings.
type rawConfig struct {
	Environments map[string]map[string]any `yaml:"environments"`
}

// Load reads the topology config from path. Missing or malformed files are
// absorbed: the returned config is empty and the condition is logged.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logutil.Warn("failed to read topology config", "path", path, "error", err)
		}
		return Config{}, nil
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		logutil.Warn("failed to parse topology config", "path", path, "error", err)
		return Config{}, nil
	}

	cfg := Config{Environments: make(map[string]map[string]string, len(raw.Environments))}
	for env, vars := range raw.Environments {
		coerced := make(map[string]string, len(vars))
		for name, value := range vars {
			coerced[name] = stringify(value)
		}
		cfg.Environments[env] = coerced
	}
	return cfg, nil
}

// Vars returns the variable map for the named environment, falling back to
// the local environment when the name is unknown. The result may be nil.
func (c Config) Vars(envName string) map[string]string {
	if vars, ok := c.Environments[envName]; ok {
		return vars
	}
	return c.Environments[LocalEnvironment]
}

// stringify coerces a YAML scalar to its string representation.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
