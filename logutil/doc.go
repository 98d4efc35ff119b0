// Package logutil provides structured logging for the builder on top of
// log/slog. A single global logger writes to stderr; debug logging is enabled
// programmatically or via the FABRIX_DEBUG environment variable.
package logutil
