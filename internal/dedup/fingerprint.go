// Package dedup recognizes repeat deliveries of the same forwarded text.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"agri-updates/internal/cleaner"
)

// Retention is how long a fingerprint is remembered.
const Retention = 30 * 24 * time.Hour

// Cache maps text fingerprints to the post created for them.
type Cache interface {
	// Lookup returns the post ID stored for fp, if any.
	Lookup(ctx context.Context, fp string) (string, bool, error)
	Remember(ctx context.Context, fp, postID string) error
}

// Fingerprint hashes the cleaned, case- and space-insensitive form of a
// message, so re-forwards with different emphasis or spacing collide.
func Fingerprint(raw string) string {
	text := cleaner.Fold(cleaner.BasicPolish(raw))
	text = strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
