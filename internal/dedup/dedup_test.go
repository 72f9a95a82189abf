package dedup

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("*Hiring:* Sales Executive\nLocation:   Coimbatore")
	b := Fingerprint("Forwarded\nHiring: sales executive\n\nLocation: Coimbatore  ")
	c := Fingerprint("Hiring: Field Officer")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache := NewFileCache(dir)
	_, ok, err := cache.Lookup(ctx, "fp1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Remember(ctx, "fp1", "post-1"))
	id, ok, err := cache.Lookup(ctx, "fp1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "post-1", id)

	// a fresh instance reads the file back
	reloaded := NewFileCache(dir)
	id, ok, _ = reloaded.Lookup(ctx, "fp1")
	assert.True(t, ok)
	assert.Equal(t, "post-1", id)
}

func TestFileCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewFileCache(dir)
	cache.now = func() time.Time { return start }
	require.NoError(t, cache.Remember(ctx, "old", "post-old"))

	cache.now = func() time.Time { return start.Add(Retention + time.Hour) }
	_, ok, _ := cache.Lookup(ctx, "old")
	assert.False(t, ok)

	require.NoError(t, cache.Remember(ctx, "new", "post-new"))
	assert.NotContains(t, cache.seen, "old")
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	rc, err := NewRedisCache(ctx, url)
	require.NoError(t, err)
	defer rc.Close()

	fp := Fingerprint(time.Now().String())
	_, ok, err := rc.Lookup(ctx, fp)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.Remember(ctx, fp, "post-1"))
	id, ok, err := rc.Lookup(ctx, fp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "post-1", id)
}
