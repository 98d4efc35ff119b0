package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path traversal attack attempt.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInvalidServiceName indicates an invalid service name.
	ErrInvalidServiceName = errors.New("invalid service name")
	// ErrInsecureSecretsPermissions indicates a secret store file is readable
	// or writable by group/other.
	ErrInsecureSecretsPermissions = errors.New("insecure secret store permissions")

	// serviceNamePattern validates service names - alphanumeric start, then alphanumeric,
	// underscore, hyphen, or dot. Max 63 characters to align with DNS label limits and
	// container naming conventions.
	serviceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,62}$`)
)

// ValidatePath checks if a path is safe to use.
// It prevents path traversal attacks and symbolic link attacks.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	// Check for path traversal attempts before resolving
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}

	cleanPath := filepath.Clean(absPath)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("%w: cleaned path contains parent directory reference", ErrPathTraversal)
	}

	// Resolve symbolic links to detect link-based attacks
	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		// If the path doesn't exist yet, that's okay - we're validating the path structure
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		resolvedPath = cleanPath
	}

	if strings.Contains(resolvedPath, "..") {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}

	return nil
}

// ValidateServiceName validates that a service or application name is safe to
// use as a directory name. Names must:
// - Start with an alphanumeric character
// - Contain only alphanumeric characters, underscores, hyphens, or dots
// - Be at most 63 characters (DNS label limit)
// - Not contain path traversal sequences
//
// If allowEmpty is true, empty strings are accepted (for optional parameters).
func ValidateServiceName(name string, allowEmpty bool) error {
	if name == "" {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: service name cannot be empty", ErrInvalidServiceName)
	}

	if len(name) > 63 {
		return fmt.Errorf("%w: exceeds maximum length of 63 characters", ErrInvalidServiceName)
	}

	if !serviceNamePattern.MatchString(name) {
		return fmt.Errorf("%w: must start with alphanumeric and contain only alphanumeric, underscore, hyphen, or dot", ErrInvalidServiceName)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: contains invalid path characters", ErrInvalidServiceName)
	}

	return nil
}

// ValidateSecretsFilePermissions checks that a secret store file is only
// accessible by its owner. On Unix systems it rejects any group/other
// permission bits. On Windows, this check is skipped as Windows uses ACLs
// differently.
//
// Callers translate ErrInsecureSecretsPermissions into a user-visible warning
// rather than a hard failure, so an operator with a pre-existing store is not
// locked out.
func ValidateSecretsFilePermissions(path string) error {
	// Skip permission check on Windows as it uses ACLs
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm()&0o077 != 0 {
		return ErrInsecureSecretsPermissions
	}

	return nil
}
