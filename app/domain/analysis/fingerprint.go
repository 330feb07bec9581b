package analysis

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the deterministic content digest of raw image bytes,
// used as the result-cache key.
func Fingerprint(imageBytes []byte) string {
	sum := sha256.Sum256(imageBytes)
	return hex.EncodeToString(sum[:])
}
