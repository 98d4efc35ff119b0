package env

import (
	"regexp"

	"github.com/esystemsdev/fabrix-core/logutil"
	"github.com/esystemsdev/fabrix-core/secrets"
	"github.com/esystemsdev/fabrix-core/topology"
)

// varPattern matches ${VAR} topology placeholders.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// SubstituteVars replaces every ${VAR} token in s that has a binding in vars.
// Tokens without a binding are left verbatim.
func SubstituteVars(s string, vars map[string]string) string {
	if len(vars) == 0 {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := token[2 : len(token)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}

// Resolve materializes a template against the merged secret store and the
// named topology environment. Unknown environment names fall back to the
// local topology section.
//
// Every kv:// reference without a resolvable value is collected; if any
// remain after the whole template has been processed, Resolve fails with a
// single *secrets.MissingSecretsError naming all of them and every store
// location that was consulted.
func Resolve(template string, store *secrets.Store, envName string, topo topology.Config) (string, error) {
	vars := topo.Vars(envName)

	// Pass 1: topology substitution over the raw template.
	out := SubstituteVars(template, vars)

	// Pass 2: secret substitution, re-entering pass 1 for each secret value.
	var missing []string
	seen := make(map[string]bool)
	out = secrets.RefPattern.ReplaceAllStringFunc(out, func(ref string) string {
		key := secrets.CanonicalKey(ref)
		value, known := store.Lookup(key)
		if !known {
			if !seen[key] {
				seen[key] = true
				missing = append(missing, ref)
			}
			return ref
		}
		return SubstituteVars(value, vars)
	})

	if len(missing) > 0 {
		return "", &secrets.MissingSecretsError{Refs: missing, Locations: store.Locations()}
	}

	logutil.Debug("resolved env template", "environment", envName, "bytes", len(out))
	return out, nil
}
