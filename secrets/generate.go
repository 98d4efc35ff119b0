package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/esystemsdev/fabrix-core/logutil"
	"github.com/esystemsdev/fabrix-core/yamlutil"
)

// Database credential naming patterns, matched before the generic ones.
var (
	dbPasswordPattern = regexp.MustCompile(`^databases-([A-Za-z0-9-]+)-([0-9]+)-passwordKeyVault$`)
	dbURLPattern      = regexp.MustCompile(`^databases-([A-Za-z0-9-]+)-([0-9]+)-urlKeyVault$`)
)

const (
	// dbPasswordSuffix is appended to the normalized app name for derived
	// database passwords, keeping local credentials reproducible per app.
	dbPasswordSuffix = "_pass123"
	dbUserSuffix     = "_user"

	randomPasswordLength = 24
	randomKeyBytes       = 32
)

// GenerateMissing scans the template for kv:// references absent from the
// store file at storePath, synthesizes a value for each by naming convention,
// and merges the new keys into the file (creating it, with owner-only
// permissions, if absent). Existing keys are never overwritten.
//
// Returns the key names that were newly generated; a template whose
// references are all already satisfied yields an empty list.
func GenerateMissing(template string, storePath string) ([]string, error) {
	refs := Refs(template)
	if len(refs) == 0 {
		return nil, nil
	}

	values := make(map[string]string, len(refs))
	for _, ref := range refs {
		key := CanonicalKey(ref)
		values[key] = generateValue(key)
	}

	added, err := yamlutil.MergeKeys(storePath, values)
	if err != nil {
		return nil, fmt.Errorf("failed to update secret store: %w", err)
	}

	if len(added) > 0 {
		logutil.Info("generated missing secrets", "store", storePath, "keys", len(added))
	}
	return added, nil
}

// generateValue synthesizes a value for a canonical key by matching it
// against ordered naming patterns; the first match wins. Unknown key shapes
// yield an empty string for the operator to fill in.
func generateValue(key string) string {
	if m := dbPasswordPattern.FindStringSubmatch(key); m != nil {
		return derivedDBPassword(m[1])
	}
	if m := dbURLPattern.FindStringSubmatch(key); m != nil {
		return derivedDBURL(m[1])
	}

	// The conventional "KeyVault" suffix is not part of the key's meaning;
	// strip it so e.g. redis-urlKeyVault classifies as a URL, not a key.
	lower := strings.ToLower(strings.TrimSuffix(key, "KeyVault"))
	switch {
	case strings.Contains(lower, "password"):
		return randomPassword(randomPasswordLength)
	case strings.Contains(lower, "key"), strings.Contains(lower, "secret"), strings.Contains(lower, "token"):
		return randomKey(randomKeyBytes)
	case strings.Contains(lower, "url"):
		// URLs to external systems cannot be guessed; left for the operator.
		return ""
	default:
		return ""
	}
}

// normalizeAppKey converts an app name to its credential identifier form.
func normalizeAppKey(app string) string {
	return strings.ReplaceAll(app, "-", "_")
}

// derivedDBPassword returns the deterministic per-app database password.
func derivedDBPassword(app string) string {
	return normalizeAppKey(app) + dbPasswordSuffix
}

// derivedDBURL composes a full connection string from the same app-scoped
// user and password the password pattern derives. The host stays a topology
// placeholder so the URL follows the active environment at resolve time.
func derivedDBURL(app string) string {
	key := normalizeAppKey(app)
	user := key + dbUserSuffix
	return fmt.Sprintf("postgresql://%s:%s@${POSTGRES_HOST}:5432/%s", user, key+dbPasswordSuffix, key)
}

// passwordCharset avoids shell- and YAML-hostile characters.
const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomPassword returns a random password of length n.
func randomPassword(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform's entropy source is
			// broken; there is no sensible fallback for secret material.
			panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
		}
		sb.WriteByte(passwordCharset[idx.Int64()])
	}
	return sb.String()
}

// randomKey returns a random opaque key of n bytes, hex-encoded.
func randomKey(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}
