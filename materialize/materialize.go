// Package materialize turns an application's env.template into a concrete
// .env file: it loads the layered secret store, resolves topology variables
// and kv:// references, rewrites service ports for container environments,
// and writes the result with owner-only permissions.
package materialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/esystemsdev/fabrix-core/appconfig"
	"github.com/esystemsdev/fabrix-core/env"
	"github.com/esystemsdev/fabrix-core/fileutil"
	"github.com/esystemsdev/fabrix-core/logutil"
	"github.com/esystemsdev/fabrix-core/pathutil"
	"github.com/esystemsdev/fabrix-core/portmap"
	"github.com/esystemsdev/fabrix-core/secrets"
	"github.com/esystemsdev/fabrix-core/security"
	"github.com/esystemsdev/fabrix-core/topology"
)

// ErrTemplateNotFound indicates the application has no env.template.
var ErrTemplateNotFound = errors.New("env template not found")

// Options controls a materialization run.
type Options struct {
	// SecretsPath is an explicit secret store file. When empty the layered
	// cascade (user store, app build secrets, default store) is used.
	SecretsPath string
	// Environment selects the topology section; defaults to local.
	Environment string
	// Force pre-populates the default store with generated values for any
	// referenced secret the template needs but no store defines.
	Force bool
	// AppsDir contains one subdirectory per application.
	AppsDir string
}

// Materialize resolves appName's env.template and writes the application's
// .env file, returning the written path.
//
// Resolution failures are fatal and typed: ErrTemplateNotFound, the secrets
// package's load errors, or a *secrets.MissingSecretsError naming every
// unresolvable reference. Port rewriting and secondary-copy failures are
// absorbed and logged.
func Materialize(appName string, opts Options) (string, error) {
	start := time.Now()

	if err := security.ValidateServiceName(appName, false); err != nil {
		return "", err
	}
	if opts.Environment == "" {
		opts.Environment = topology.LocalEnvironment
	}

	appDir := pathutil.AppDir(opts.AppsDir, appName)
	templatePath := pathutil.EnvTemplatePath(appDir)
	data, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return "", fmt.Errorf("reading %s: %w", templatePath, err)
	}
	template := string(data)

	if opts.Force {
		added, err := secrets.GenerateMissing(template, pathutil.DefaultSecretsPath())
		if err != nil {
			recordMaterialization(appName, opts.Environment, statusFailure, time.Since(start))
			return "", fmt.Errorf("generating missing secrets: %w", err)
		}
		if len(added) > 0 {
			logutil.Info("generated missing secrets", "app", appName, "count", len(added))
			recordGeneratedSecrets(appName, len(added))
		}
	}

	// The manifest is optional; a missing app.yaml just disables the build
	// secrets layer and the secondary copy.
	app, err := appconfig.Load(appDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	store, err := secrets.Load(secrets.LoadOptions{Path: opts.SecretsPath, App: app})
	if err != nil {
		recordMaterialization(appName, opts.Environment, statusFailure, time.Since(start))
		return "", err
	}

	topo, err := topology.Load(pathutil.TopologyPath())
	if err != nil {
		return "", err
	}

	resolved, err := env.Resolve(template, store, opts.Environment, topo)
	if err != nil {
		var missing *secrets.MissingSecretsError
		if errors.As(err, &missing) {
			recordMissingSecrets(appName, len(missing.Refs))
		}
		recordMaterialization(appName, opts.Environment, statusFailure, time.Since(start))
		return "", err
	}

	rewriter := &portmap.Rewriter{Topology: topo, AppsDir: opts.AppsDir}
	resolved = rewriter.Rewrite(resolved, opts.Environment)

	if err := checkResolved(resolved, templatePath); err != nil {
		recordMaterialization(appName, opts.Environment, statusFailure, time.Since(start))
		return "", err
	}

	envPath := pathutil.EnvFilePath(appDir)
	if err := fileutil.AtomicWriteFile(envPath, []byte(resolved), fileutil.SecretFilePermission); err != nil {
		recordMaterialization(appName, opts.Environment, statusFailure, time.Since(start))
		return "", fmt.Errorf("writing %s: %w", envPath, err)
	}

	copySecondary(app, resolved)
	recordKeysWritten(appName, readBackKeyCount(envPath))
	recordMaterialization(appName, opts.Environment, statusSuccess, time.Since(start))

	logutil.Info("materialized env file", "app", appName, "environment", opts.Environment, "path", envPath)
	return envPath, nil
}

// checkResolved enforces the output invariants. A kv:// remnant means the
// resolver's contract was violated and is fatal; leftover ${VAR} tokens are
// legitimate runtime variables and only logged.
func checkResolved(resolved, templatePath string) error {
	if refs := secrets.Refs(resolved); len(refs) > 0 {
		return fmt.Errorf("unresolved secret references remain in %s output: %s",
			templatePath, strings.Join(refs, ", "))
	}
	if strings.Contains(resolved, "${") {
		logutil.Warn("resolved env contains unexpanded ${VAR} tokens, leaving them for runtime", "template", templatePath)
	}
	return nil
}

// copySecondary writes the resolved content to the manifest's copyTo target.
// A directory target receives a .env file inside it. Failures are absorbed.
func copySecondary(app *appconfig.App, resolved string) {
	target := app.CopyToPath()
	if target == "" {
		return
	}
	if fileutil.IsDir(target) {
		target = filepath.Join(target, pathutil.EnvFile)
	}
	if err := fileutil.AtomicWriteFile(target, []byte(resolved), fileutil.SecretFilePermission); err != nil {
		logutil.Warn("secondary env copy failed", "target", target, "error", err)
	}
}

// readBackKeyCount parses the written file as dotenv to confirm it is
// well-formed. A parse failure is logged, never fatal.
func readBackKeyCount(path string) int {
	values, err := godotenv.Read(path)
	if err != nil {
		logutil.Warn("written env file failed dotenv parse", "path", path, "error", err)
		return 0
	}
	return len(values)
}
