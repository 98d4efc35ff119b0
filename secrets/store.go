package secrets

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scheme is the URI scheme of secret references in env templates.
const Scheme = "kv://"

// RefPattern is the canonical kv:// reference grammar: one or more segments
// of [A-Za-z0-9_-] separated by slashes. Letter case is preserved.
var RefPattern = regexp.MustCompile(`kv://[A-Za-z0-9_-]+(?:/[A-Za-z0-9_-]+)*`)

// Provider is one secret source: a YAML file of key->value pairs.
type Provider struct {
	// Location is the file the values were loaded from.
	Location string
	// Values maps canonical keys to secret values.
	Values map[string]string
}

// Store is an ordered list of providers, highest precedence first.
type Store struct {
	providers []Provider
}

// NewStore builds a store from providers in precedence order.
func NewStore(providers ...Provider) *Store {
	return &Store{providers: providers}
}

// Lookup returns the value for a canonical key. The first provider with a
// non-empty value wins; an empty value falls through to lower-precedence
// providers. A key present only with empty values is still reported as
// known, with an empty value.
func (s *Store) Lookup(key string) (string, bool) {
	known := false
	for _, p := range s.providers {
		value, ok := p.Values[key]
		if !ok {
			continue
		}
		known = true
		if strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	if known {
		return "", true
	}
	return "", false
}

// Locations returns the file paths of all providers in precedence order.
func (s *Store) Locations() []string {
	locations := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		locations = append(locations, p.Location)
	}
	return locations
}

// Merged flattens the store into a single map under the store's precedence
// rules.
func (s *Store) Merged() map[string]string {
	merged := make(map[string]string)
	for _, p := range s.providers {
		for key := range p.Values {
			if _, done := merged[key]; done && strings.TrimSpace(merged[key]) != "" {
				continue
			}
			value, _ := s.Lookup(key)
			merged[key] = value
		}
	}
	return merged
}

// Refs returns every kv:// reference in text, in order of first appearance,
// de-duplicated by canonical key.
func Refs(text string) []string {
	matches := RefPattern.FindAllString(text, -1)
	if matches == nil {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	refs := make([]string, 0, len(matches))
	for _, ref := range matches {
		key := CanonicalKey(ref)
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, ref)
	}
	return refs
}

// CanonicalKey converts a kv:// reference (or a bare key) to the canonical
// on-disk key form: scheme stripped, path segments joined with hyphens.
// kv://a/b and kv://a-b address the same key.
func CanonicalKey(ref string) string {
	key := strings.TrimPrefix(ref, Scheme)
	return strings.ReplaceAll(key, "/", "-")
}

// parseStoreFile decodes a secret store document. A null document (empty
// file) is an empty store; any other non-mapping top level is rejected.
// Keys are normalized to canonical form and non-string scalars coerced.
func parseStoreFile(data []byte, location string) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, location, err)
	}
	if doc == nil {
		// An empty or comments-only file is an empty store; an explicit
		// non-mapping document (e.g. a lone "null") is a format error.
		if !effectivelyEmpty(data) {
			return nil, fmt.Errorf("%w: %s: top-level value is not a mapping", ErrInvalidFormat, location)
		}
		return map[string]string{}, nil
	}

	values := make(map[string]string, len(doc))
	for key, value := range doc {
		values[CanonicalKey(key)] = coerceScalar(value)
	}
	return values, nil
}

// effectivelyEmpty reports whether a document contains only whitespace,
// comments, or document markers.
func effectivelyEmpty(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return false
	}
	return true
}

// coerceScalar renders a YAML scalar as a string.
func coerceScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
