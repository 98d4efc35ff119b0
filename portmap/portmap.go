// Package portmap rewrites inter-service URLs in resolved env text for the
// docker topology. On a docker network each service is reachable under its
// service name at its container port, so URLs that were resolved against
// host-mapped ports get their port swapped for the target service's
// containerPort (falling back to its port).
//
// Rewriting is strictly best-effort: a service whose port profile cannot be
// located keeps its original port, and hostnames that are not recognized
// services (external SaaS endpoints, for instance) are never touched.
package portmap

import (
	"strings"

	"github.com/esystemsdev/fabrix-core/appconfig"
	"github.com/esystemsdev/fabrix-core/logutil"
	"github.com/esystemsdev/fabrix-core/pathutil"
	"github.com/esystemsdev/fabrix-core/security"
	"github.com/esystemsdev/fabrix-core/topology"
	"github.com/esystemsdev/fabrix-core/urlutil"
)

// DockerEnvironment is the only topology environment whose URLs are rewritten.
const DockerEnvironment = "docker"

// hostVarSuffix marks topology variables whose value names a service host.
const hostVarSuffix = "_HOST"

// Rewriter rewrites service ports in resolved env text.
type Rewriter struct {
	// Topology supplies the docker section's *_HOST variables.
	Topology topology.Config
	// AppsDir is the directory containing one subdirectory per application;
	// a service's port profile is its own app.yaml there.
	AppsDir string
}

// Rewrite returns envText with every recognized service URL's port replaced
// by that service's container port. It is a no-op for any environment other
// than docker.
func (r *Rewriter) Rewrite(envText, envName string) string {
	if envName != DockerEnvironment {
		return envText
	}

	hosts := r.serviceHosts()
	if len(hosts) == 0 {
		return envText
	}

	// Port profiles are memoized per call; each call re-reads from disk.
	ports := make(map[string]int)
	misses := make(map[string]bool)

	return urlutil.RewritePorts(envText, func(hostname string) (int, bool) {
		if !hosts[hostname] {
			return 0, false
		}
		if port, ok := ports[hostname]; ok {
			return port, true
		}
		if misses[hostname] {
			return 0, false
		}

		port, ok := r.servicePort(hostname)
		if !ok {
			misses[hostname] = true
			return 0, false
		}
		ports[hostname] = port
		return port, true
	})
}

// serviceHosts builds the hostname set from the docker topology section:
// every variable ending in _HOST contributes its value as both a candidate
// hostname and the name of the service sharing that identity.
func (r *Rewriter) serviceHosts() map[string]bool {
	vars := r.Topology.Environments[DockerEnvironment]
	hosts := make(map[string]bool, len(vars))
	for name, value := range vars {
		if strings.HasSuffix(name, hostVarSuffix) && value != "" {
			hosts[value] = true
		}
	}
	return hosts
}

// servicePort loads a service's port profile from its own app.yaml.
// Every failure is absorbed: the caller keeps the original port.
func (r *Rewriter) servicePort(service string) (int, bool) {
	if err := security.ValidateServiceName(service, false); err != nil {
		logutil.Debug("skipping port rewrite for unsafe service name", "service", service, "error", err)
		return 0, false
	}

	app, err := appconfig.Load(pathutil.AppDir(r.AppsDir, service))
	if err != nil {
		logutil.Debug("service port profile not found, keeping original port", "service", service, "error", err)
		return 0, false
	}

	port, ok := app.RuntimePort()
	if !ok {
		logutil.Debug("service declares no port, keeping original", "service", service)
		return 0, false
	}
	return port, true
}
