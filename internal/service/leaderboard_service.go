package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/leaderboard"
)

// LeaderboardSource lists the counters to rank from persistent storage.
type LeaderboardSource interface {
	ListForLeaderboard() ([]leaderboard.Entry, error)
	UpdateRank(userID int64, rank, score int) error
}

// LeaderboardService keeps a ranked board in memory. A scheduled job
// refreshes it every few minutes; reads between refreshes are served from
// the cached ranking without touching the database.
type LeaderboardService struct {
	source LeaderboardSource
	maxAge time.Duration

	mu          sync.RWMutex
	entries     []leaderboard.Entry
	refreshedAt time.Time
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(source LeaderboardSource, maxAge time.Duration) *LeaderboardService {
	return &LeaderboardService{
		source: source,
		maxAge: maxAge,
	}
}

// Refresh re-reads all counters, recomputes the ranking and writes the
// new ranks back to storage. The write-back is best effort: cached ranks
// are display data and self-correct on the next cycle.
func (s *LeaderboardService) Refresh() error {
	entries, err := s.source.ListForLeaderboard()
	if err != nil {
		return fmt.Errorf("failed to load leaderboard entries: %w", err)
	}

	ranked := leaderboard.Rank(entries)

	s.mu.Lock()
	s.entries = ranked
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	for _, e := range ranked {
		if err := s.source.UpdateRank(e.UserID, e.Rank, e.Score); err != nil {
			log.Printf("Warning: failed to write rank for user %d: %v", e.UserID, err)
		}
	}
	return nil
}

// Top returns the first n ranked entries, refreshing first if the cached
// board is stale or was never built.
func (s *LeaderboardService) Top(n int) ([]leaderboard.Entry, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]leaderboard.Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}

// UserRank returns the cached entry for one user, or nil if the user is
// not on the board.
func (s *LeaderboardService) UserRank(userID int64) (*leaderboard.Entry, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.UserID == userID {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (s *LeaderboardService) ensureFresh() error {
	s.mu.RLock()
	fresh := !s.refreshedAt.IsZero() && time.Since(s.refreshedAt) < s.maxAge
	s.mu.RUnlock()
	if fresh {
		return nil
	}
	return s.Refresh()
}
