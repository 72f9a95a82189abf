package dedup

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type seenEntry struct {
	Fingerprint string `json:"fingerprint"`
	PostID      string `json:"post_id"`
	Timestamp   int64  `json:"timestamp"`
}

// FileCache keeps fingerprints in a JSON file; suitable for a single instance.
type FileCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]seenEntry
	now      func() time.Time
}

// NewFileCache creates or loads a fingerprint cache in cacheDir
func NewFileCache(cacheDir string) *FileCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &FileCache{
		filePath: filepath.Join(cacheDir, "seen_messages.json"),
		seen:     make(map[string]seenEntry),
		now:      time.Now,
	}
	cache.load()
	return cache
}

// Lookup checks if a fingerprint was already turned into a post.
// The mutex guards the map against concurrent webhook deliveries.
func (fc *FileCache) Lookup(_ context.Context, fp string) (string, bool, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	e, ok := fc.seen[fp]
	if !ok || fc.expired(e) {
		return "", false, nil
	}
	return e.PostID, true, nil
}

func (fc *FileCache) Remember(_ context.Context, fp, postID string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.seen[fp] = seenEntry{Fingerprint: fp, PostID: postID, Timestamp: fc.now().UnixMilli()}
	return fc.save()
}

func (fc *FileCache) expired(e seenEntry) bool {
	return fc.now().UnixMilli()-e.Timestamp > Retention.Milliseconds()
}

// load reads the cache from disk, dropping expired entries
func (fc *FileCache) load() {
	data, err := os.ReadFile(fc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", fc.filePath, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", fc.filePath, err)
		return
	}

	loaded := 0
	for _, e := range entries {
		if !fc.expired(e) {
			fc.seen[e.Fingerprint] = e
			loaded++
		}
	}
	log.Printf("📋 Loaded %d fingerprints (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes live entries to disk; caller holds the lock
func (fc *FileCache) save() error {
	entries := make([]seenEntry, 0, len(fc.seen))
	for fp, e := range fc.seen {
		if fc.expired(e) {
			delete(fc.seen, fp)
			continue
		}
		entries = append(entries, e)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fc.filePath, data, 0644)
}
