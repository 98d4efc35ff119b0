// Package fileutil provides file system helpers shared across the builder:
// atomic writes with controlled permissions, directory creation, and YAML
// file reading with path validation.
package fileutil
