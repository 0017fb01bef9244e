package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// FileCache keeps a local JSON snapshot of each user's progress
// document. It is the fallback read path when the database is
// unreachable and is refreshed after every successful persist, so a
// cached document is at most one mutation behind.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// NewFileCache creates the cache directory if needed
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) path(userID int64) string {
	return filepath.Join(c.dir, fmt.Sprintf("progress_%d.json", userID))
}

// Get returns the cached document for a user, or nil if none exists
func (c *FileCache) Get(userID int64) (*models.UserProgress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached progress: %w", err)
	}

	var p models.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse cached progress: %w", err)
	}
	if p.Completions == nil {
		p.Completions = make(models.CompletionRecord)
	}
	return &p, nil
}

// Put replaces the cached document for a user. Writes go through a temp
// file and rename so a crash mid-write never leaves a torn snapshot.
func (c *FileCache) Put(p *models.UserProgress) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}

	target := c.path(p.UserID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Delete removes the cached document for a user
func (c *FileCache) Delete(userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(userID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
