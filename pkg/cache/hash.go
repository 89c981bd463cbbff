package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey builds "kind:<sha256 of parts>". Parts are NUL-separated so that
// ("ab", "c") and ("a", "bc") produce different keys.
func hashKey(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. Manifests are keyed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
