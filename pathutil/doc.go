// Package pathutil resolves the on-disk locations the builder works with:
// the tool home directory, the secret store files, the environment topology
// config, and per-application directories.
package pathutil
