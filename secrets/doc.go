// Package secrets implements the layered secret store behind kv:// references
// in env templates.
//
// A store is an ordered list of providers, each backed by one YAML file of
// key->value pairs. Providers are consulted in a fixed precedence: the first
// provider supplying a non-empty value for a key wins, while a key that only
// ever appears with an empty value still counts as known. The cascade is
//
//  1. the per-machine user store (secrets.local.yaml in the tool home),
//  2. the build secrets file an application declares in its own app.yaml,
//  3. the global default store (secrets.yaml in the tool home).
//
// kv:// references address store keys. Both path-style (kv://a/b) and
// hyphen-style (kv://a-b) spellings are accepted at the parsing boundary and
// normalized to a single canonical hyphen-joined key.
//
// The package also owns the missing-secret generator: it scans a template for
// kv:// references absent from the default store and synthesizes values by
// naming convention, persisting them back to the store file without touching
// existing content.
package secrets
