package streamcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"stride/internal/logging"
)

// Entry represents one cached stream payload.
type Entry struct {
	ActivityID  int64           `json:"activity_id"`
	Fingerprint string          `json:"fingerprint"` // requested channel set, comma-joined
	Payload     json.RawMessage `json:"payload"`
	CachedAt    time.Time       `json:"cached_at"`
}

// Cache provides thread-safe access to the stream payload cache.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache creates a cache instance. If path is empty, the cache is
// non-functional and all operations become no-ops. The cache file is
// created lazily on first Store call.
func NewCache(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "streamcache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load stream cache",
			logging.String(logging.FieldEventType, "streamcache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously cached payloads will be re-fetched"))
	}

	return c
}

// Fingerprint derives the cache fingerprint for a requested channel set.
func Fingerprint(keys []string) string {
	return strings.Join(keys, ",")
}

func entryKey(activityID int64, fingerprint string) string {
	return fmt.Sprintf("%d|%s", activityID, fingerprint)
}

// Lookup returns the cached payload for the activity and channel set.
func (c *Cache) Lookup(activityID int64, fingerprint string) (json.RawMessage, bool) {
	if activityID == 0 || c.path == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[entryKey(activityID, fingerprint)]
	if !found {
		return nil, false
	}
	return entry.Payload, true
}

// Store adds or replaces the payload for an activity and persists to disk.
func (c *Cache) Store(activityID int64, fingerprint string, payload json.RawMessage) error {
	if activityID == 0 {
		return errors.New("activity ID cannot be zero")
	}
	if c.path == "" {
		return nil // no-op when path not configured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entryKey(activityID, fingerprint)] = Entry{
		ActivityID:  activityID,
		Fingerprint: fingerprint,
		Payload:     payload,
		CachedAt:    time.Now().UTC(),
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached stream payload",
		logging.Int64("activity_id", activityID),
		logging.String("fingerprint", fingerprint),
		logging.Int("payload_bytes", len(payload)))

	return nil
}

// Remove deletes every entry for the given activity and persists the change.
func (c *Cache) Remove(activityID int64) error {
	if activityID == 0 {
		return errors.New("activity ID cannot be zero")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.ActivityID == activityID {
			delete(c.entries, key)
			removed++
		}
	}
	if removed == 0 {
		return fmt.Errorf("activity %d not found in cache", activityID)
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("removed cached payloads",
		logging.Int64("activity_id", activityID),
		logging.Int("entry_count", removed))
	return nil
}

// List returns all cache entries sorted by CachedAt descending.
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	return entries
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cleared stream cache")
	return nil
}

// Count returns the number of entries in the cache.
func (c *Cache) Count() int {
	if c.path == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// load reads the cache from disk into memory.
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read cache file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if entry.ActivityID == 0 {
			continue
		}
		c.entries[entryKey(entry.ActivityID, entry.Fingerprint)] = entry
	}

	c.logger.Debug("loaded stream cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))

	return nil
}

// save writes the cache to disk atomically.
func (c *Cache) save() error {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	// Sort for deterministic output
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].ActivityID < entries[j].ActivityID
		}
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// Write atomically via temp file
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
