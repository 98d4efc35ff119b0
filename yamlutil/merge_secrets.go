// Package yamlutil provides utilities for manipulating YAML files while
// preserving formatting, comments, and structure. It uses text-based
// manipulation to guarantee zero data loss when appending keys to secret
// store files an operator may have annotated by hand.
package yamlutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/esystemsdev/fabrix-core/fileutil"
	"github.com/esystemsdev/fabrix-core/security"
)

// MergeKeys appends the given key/value pairs to the YAML mapping file at
// path, preserving all existing content byte-for-byte. Keys already present
// in the file are never overwritten and are silently skipped.
//
// If the file does not exist it is created (with its parent directory) using
// owner-only permissions. An existing file whose top level is not a mapping
// is rejected. A null document (empty file) is treated as an empty mapping.
//
// Returns the list of keys that were actually appended, sorted.
func MergeKeys(path string, values map[string]string) ([]string, error) {
	if err := security.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	content := ""
	existing := map[string]bool{}

	// #nosec G304 -- Path validated by security.ValidatePath
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
		keys, parseErr := mappingKeys(data)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", path, parseErr)
		}
		for _, k := range keys {
			existing[k] = true
		}
	case os.IsNotExist(err):
		if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	added := make([]string, 0, len(values))
	for key := range values {
		if !existing[key] {
			added = append(added, key)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}
	sort.Strings(added)

	var sb strings.Builder
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
	for _, key := range added {
		line, err := renderEntry(key, values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode key %s: %w", key, err)
		}
		sb.WriteString(line)
	}

	if err := fileutil.AtomicWriteFile(path, []byte(sb.String()), fileutil.SecretFilePermission); err != nil {
		return nil, err
	}

	return added, nil
}

// mappingKeys returns the top-level keys of a YAML mapping document.
// A null document yields no keys; any other non-mapping top level is an error.
func mappingKeys(data []byte) ([]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	return keys, nil
}

// renderEntry encodes a single key/value pair as one YAML mapping line.
// Encoding through yaml.Marshal keeps quoting rules correct for values
// containing colons, hashes, or leading special characters.
func renderEntry(key, value string) (string, error) {
	out, err := yaml.Marshal(map[string]string{key: value})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
