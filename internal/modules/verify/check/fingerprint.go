package check

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint derives the cache key for a claim. Claims that differ
// only in surrounding whitespace or letter case map to the same key.
func Fingerprint(claim string) string {
	normalized := strings.ToLower(strings.TrimSpace(claim))
	return fmt.Sprintf("%016x", xxhash.Sum64String(normalized))
}
