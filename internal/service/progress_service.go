package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/habits"
	"github.com/Kishori-12/fitstreak-ai/internal/leaderboard"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/validation"
)

var (
	ErrRemoteUnavailable   = errors.New("progress store unavailable")
	ErrUnknownHabit        = errors.New("habit not in active set")
	ErrInvalidHabitSetSize = errors.New("habit set size out of bounds")
	ErrMalformedImport     = errors.New("malformed import document")
)

// ProgressStore is the persistent document store behind the service.
type ProgressStore interface {
	Get(userID int64) (*models.UserProgress, error)
	Save(p *models.UserProgress) error
}

// ProgressCache holds local snapshots used when the store is unreachable.
type ProgressCache interface {
	Get(userID int64) (*models.UserProgress, error)
	Put(p *models.UserProgress) error
}

// ProgressSnapshot is what a mutation or load hands back to the caller:
// the full document plus the derived state the client renders directly.
type ProgressSnapshot struct {
	Progress        *models.UserProgress     `json:"progress"`
	Habits          []models.HabitDefinition `json:"activeHabits"`
	CompletedToday  int                      `json:"completedToday"`
	Pet             habits.PetState          `json:"petState"`
	NewAchievements []string                 `json:"newAchievements,omitempty"`
	Synced          bool                     `json:"synced"`
}

// ProgressService owns the read-merge-write cycle on progress documents.
// Mutations apply locally first: a failed persist is logged and reported
// through the Synced flag, never rolled back, so one flaky write does not
// lose a completed habit.
type ProgressService struct {
	store      ProgressStore
	cache      ProgressCache
	windowDays int
	threshold  float64
}

// NewProgressService creates a new progress service
func NewProgressService(store ProgressStore, cache ProgressCache, windowDays int, threshold float64) *ProgressService {
	if windowDays <= 0 {
		windowDays = habits.DefaultWindowDays
	}
	if threshold <= 0 {
		threshold = habits.DefaultSuccessThreshold
	}
	return &ProgressService{
		store:      store,
		cache:      cache,
		windowDays: windowDays,
		threshold:  threshold,
	}
}

// Load returns the user's progress, creating an empty document on first
// use. Derived fields are recomputed so a streak broken by elapsed days
// shows correctly even before the first mutation of the day.
func (s *ProgressService) Load(userID int64, today string) (*ProgressSnapshot, error) {
	p, synced := s.fetchOrLocal(userID)

	// Mutations recompute and stamp LastUpdate, so a same-day load
	// cannot change any derived field. Only a crossed day boundary can.
	if dates.IsNewDay(p.LastUpdate, time.Now()) {
		staleStreak := p.Streak
		s.recompute(p, today)
		if synced && p.Streak != staleStreak {
			if err := s.store.Save(p); err != nil {
				log.Printf("Warning: failed to persist recomputed progress for user %d: %v", userID, err)
				synced = false
			}
		}
	}
	s.cachePut(p)

	return s.snapshot(p, today, nil, synced), nil
}

// CompleteHabit marks a habit done for the given day. Marking an already
// completed habit is a no-op, so retries are safe.
func (s *ProgressService) CompleteHabit(userID int64, habitID, today string) (*ProgressSnapshot, error) {
	p, synced := s.fetchOrLocal(userID)

	if !habitInSet(habitID, p.ActiveHabits()) {
		return nil, ErrUnknownHabit
	}

	if p.Completions[today] == nil {
		p.Completions[today] = make(map[string]bool)
	}
	p.Completions[today][habitID] = true

	newly := s.recompute(p, today)
	p.LastUpdate = time.Now()

	if err := s.store.Save(p); err != nil {
		log.Printf("Warning: failed to persist progress for user %d: %v", userID, err)
		synced = false
	}
	s.cachePut(p)

	return s.snapshot(p, today, newly, synced), nil
}

// ReplaceHabitSet swaps the user's active habits for a custom set of 3 to
// 8 habits. Historical completions keep their recorded IDs; derived fields
// are rebuilt against the new set size.
func (s *ProgressService) ReplaceHabitSet(userID int64, defs []models.HabitDefinition, today string) (*ProgressSnapshot, error) {
	if len(defs) < validation.MinHabitSetSize || len(defs) > validation.MaxHabitSetSize {
		return nil, ErrInvalidHabitSetSize
	}

	seen := make(map[string]bool, len(defs))
	cleaned := make([]models.HabitDefinition, 0, len(defs))
	for _, d := range defs {
		if err := validation.ValidateHabitName(d.Name); err != nil {
			return nil, err
		}
		if d.ID == "" {
			d.ID = slugify(d.Name)
		}
		if seen[d.ID] {
			return nil, validation.ValidationError{Field: "id", Message: fmt.Sprintf("duplicate habit id %q", d.ID)}
		}
		seen[d.ID] = true
		cleaned = append(cleaned, d)
	}

	p, synced := s.fetchOrLocal(userID)

	p.CustomHabits = cleaned
	newly := s.recompute(p, today)
	// The completion history has not changed, only how it is judged, so
	// the stored best streak is the floor. Days recorded under the old
	// set rarely count as complete under the new count.
	p.BestStreak = habits.BestStreak(p.BestStreak, habits.HistoricalBestStreak(p.Completions, len(cleaned)))
	p.LastUpdate = time.Now()

	if err := s.store.Save(p); err != nil {
		log.Printf("Warning: failed to persist habit set for user %d: %v", userID, err)
		synced = false
	}
	s.cachePut(p)

	return s.snapshot(p, today, newly, synced), nil
}

// Export returns the raw progress document for download
func (s *ProgressService) Export(userID int64) (*models.UserProgress, error) {
	p, _, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = models.NewUserProgress(userID)
	}
	return p, nil
}

// Import replaces the user's document with an uploaded export. Every
// derived field is rebuilt from the imported completions, so counters in
// the file are ignored and cannot be forged.
func (s *ProgressService) Import(userID int64, data []byte, today string) (*ProgressSnapshot, error) {
	var doc models.UserProgress
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	for day := range doc.Completions {
		if !dates.IsValidKey(day) {
			return nil, fmt.Errorf("%w: bad day key %q", ErrMalformedImport, day)
		}
	}
	if len(doc.CustomHabits) > 0 &&
		(len(doc.CustomHabits) < validation.MinHabitSetSize || len(doc.CustomHabits) > validation.MaxHabitSetSize) {
		return nil, ErrInvalidHabitSetSize
	}

	p := models.NewUserProgress(userID)
	if doc.Completions != nil {
		p.Completions = doc.Completions
	}
	p.CustomHabits = doc.CustomHabits

	newly := s.recompute(p, today)
	p.BestStreak = habits.BestStreak(habits.HistoricalBestStreak(p.Completions, len(p.ActiveHabits())), p.Streak)
	p.LastUpdate = time.Now()

	synced := true
	if err := s.store.Save(p); err != nil {
		log.Printf("Warning: failed to persist imported progress for user %d: %v", userID, err)
		synced = false
	}
	s.cachePut(p)

	return s.snapshot(p, today, newly, synced), nil
}

// AnalyticsReport bundles the derived statistics for one user.
type AnalyticsReport struct {
	SuccessRate int                `json:"successRate"`
	PerHabit    []habits.HabitRate `json:"perHabit"`
	Weekly      []habits.DayStat   `json:"weekly"`
	WindowDays  int                `json:"windowDays"`
}

// Analytics computes success rate, per-habit rates and the weekly series
func (s *ProgressService) Analytics(userID int64, today string) (*AnalyticsReport, error) {
	p, _, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = models.NewUserProgress(userID)
	}

	habitCount := len(p.ActiveHabits())
	return &AnalyticsReport{
		SuccessRate: habits.SuccessRate(p.Completions, habitCount, s.windowDays, s.threshold, today),
		PerHabit:    habits.PerHabitRates(p.Completions, s.windowDays, today),
		Weekly:      habits.WeeklySeries(p.Completions, habitCount, today),
		WindowDays:  s.windowDays,
	}, nil
}

// fetch reads the document from the store, falling back to the local
// cache. The bool reports whether the store answered.
func (s *ProgressService) fetch(userID int64) (*models.UserProgress, bool, error) {
	p, err := s.store.Get(userID)
	if err == nil {
		return p, true, nil
	}
	log.Printf("Warning: progress store read failed for user %d, trying cache: %v", userID, err)

	cached, cacheErr := s.cache.Get(userID)
	if cacheErr != nil || cached == nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return cached, false, nil
}

// fetchOrLocal is fetch for the tracking paths, which must never block on
// storage: when neither the store nor the cache has a copy, the user
// continues on a fresh local document that reaches the store with the
// next save that goes through.
func (s *ProgressService) fetchOrLocal(userID int64) (*models.UserProgress, bool) {
	p, synced, err := s.fetch(userID)
	if err != nil {
		log.Printf("Warning: no stored or cached progress for user %d, starting a local document: %v", userID, err)
		return models.NewUserProgress(userID), false
	}
	if p == nil {
		p = models.NewUserProgress(userID)
	}
	return p, synced
}

func (s *ProgressService) cachePut(p *models.UserProgress) {
	if err := s.cache.Put(p); err != nil {
		log.Printf("Warning: failed to cache progress for user %d: %v", p.UserID, err)
	}
}

// recompute rebuilds every derived field from the completion record and
// returns achievements unlocked by this recomputation. Achievements are
// never revoked: once earned they stay even if the underlying counters
// would no longer qualify.
func (s *ProgressService) recompute(p *models.UserProgress, today string) []string {
	habitCount := len(p.ActiveHabits())

	p.TotalCompleted = p.Completions.Total()
	p.Streak = habits.CurrentStreak(p.Completions, habitCount, today)
	p.BestStreak = habits.BestStreak(p.BestStreak, p.Streak)
	p.Score = leaderboard.Score(p.Streak, p.TotalCompleted)

	earned := habits.EvaluateAchievements(p.TotalCompleted, p.Streak, p.Completions.CompletedOn(today), habitCount)
	merged := mergeAchievements(p.Achievements, earned)
	newly := habits.NewAchievements(p.Achievements, merged)
	p.Achievements = merged
	return newly
}

func (s *ProgressService) snapshot(p *models.UserProgress, today string, newly []string, synced bool) *ProgressSnapshot {
	active := p.ActiveHabits()
	completedToday := p.Completions.CompletedOn(today)
	return &ProgressSnapshot{
		Progress:        p,
		Habits:          active,
		CompletedToday:  completedToday,
		Pet:             habits.ClassifyPet(completedToday, len(active)),
		NewAchievements: newly,
		Synced:          synced,
	}
}

func mergeAchievements(previous, earned []string) []string {
	set := make(map[string]bool, len(previous)+len(earned))
	for _, id := range previous {
		set[id] = true
	}
	for _, id := range earned {
		set[id] = true
	}
	merged := make([]string, 0, len(set))
	for id := range set {
		merged = append(merged, id)
	}
	sort.Strings(merged)
	return merged
}

func habitInSet(id string, defs []models.HabitDefinition) bool {
	for _, d := range defs {
		if d.ID == id {
			return true
		}
	}
	return false
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
