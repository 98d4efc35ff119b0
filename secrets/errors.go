package secrets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSecretsFileNotFound indicates an explicitly requested secrets file
	// does not exist.
	ErrSecretsFileNotFound = errors.New("secrets file not found")
	// ErrNoSecretsFile indicates no secrets file exists anywhere in the
	// cascading lookup.
	ErrNoSecretsFile = errors.New("no secrets file found")
	// ErrInvalidFormat indicates a secrets file parsed to something other
	// than a mapping.
	ErrInvalidFormat = errors.New("invalid secrets format")
)

// MissingSecretsError aggregates every kv:// reference that had no resolvable
// value anywhere in the merged store, together with the file locations that
// were consulted, so the operator can add each key to the right file in one
// round-trip.
type MissingSecretsError struct {
	// Refs are the unresolved references as they appear in the template.
	Refs []string
	// Locations are the store files that were searched.
	Locations []string
}

func (e *MissingSecretsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "missing secrets: %s", strings.Join(e.Refs, ", "))
	if len(e.Locations) > 0 {
		fmt.Fprintf(&sb, " (searched %s)", strings.Join(e.Locations, ", "))
	}
	sb.WriteString("; add the missing keys to one of these files")
	return sb.String()
}
