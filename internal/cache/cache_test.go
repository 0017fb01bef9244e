package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	p := models.NewUserProgress(42)
	p.Completions["2026-03-14"] = map[string]bool{"water": true, "steps": true}
	p.Streak = 3
	p.BestStreak = 7
	p.TotalCompleted = 25
	p.Achievements = []string{"first_habit", "week_warrior"}
	p.LastUpdate = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	if err := c.Put(p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached document, got nil")
	}
	if got.Streak != 3 || got.BestStreak != 7 || got.TotalCompleted != 25 {
		t.Errorf("counters = %d/%d/%d, want 3/7/25", got.Streak, got.BestStreak, got.TotalCompleted)
	}
	if got.Completions.CompletedOn("2026-03-14") != 2 {
		t.Errorf("completions on 2026-03-14 = %d, want 2", got.Completions.CompletedOn("2026-03-14"))
	}
	if len(got.Achievements) != 2 {
		t.Errorf("achievements = %v, want 2 entries", got.Achievements)
	}
}

func TestFileCacheMissingUser(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	got, err := c.Get(999)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for uncached user, got %+v", got)
	}
}

func TestFileCacheDelete(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	p := models.NewUserProgress(7)
	if err := c.Put(p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Delete(7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "progress_7.json")); !os.IsNotExist(err) {
		t.Error("expected cache file to be removed")
	}

	// Deleting again should not error
	if err := c.Delete(7); err != nil {
		t.Errorf("Delete on missing file: %v", err)
	}
}

func TestFileCachePutOverwrites(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	p := models.NewUserProgress(1)
	p.Streak = 1
	if err := c.Put(p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	p.Streak = 2
	if err := c.Put(p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Streak != 2 {
		t.Errorf("streak = %d, want 2", got.Streak)
	}
}
