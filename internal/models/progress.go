package models

import "time"

// HabitDefinition describes one habit in a user's active set.
// Definitions are immutable once written into a historical record; the
// active set may change but past day entries keep the IDs they were
// recorded with.
type HabitDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultHabits is the habit set every new user starts with.
var DefaultHabits = []HabitDefinition{
	{ID: "water", Name: "Drink 8 glasses of water", Icon: "💧"},
	{ID: "steps", Name: "Walk 8000+ steps", Icon: "👟"},
	{ID: "sleep", Name: "Sleep 7+ hours", Icon: "😴"},
	{ID: "meditation", Name: "10 min meditation/yoga", Icon: "🧘"},
	{ID: "medicine", Name: "Take medicine/vitamins", Icon: "💊"},
}

// CompletionRecord maps day keys (YYYY-MM-DD) to per-habit completion.
// A missing day means "no data", a missing habit within a day means "not
// completed". Values are only ever set to true; false entries (e.g. from
// an imported file) are simply treated as not completed.
type CompletionRecord map[string]map[string]bool

// CompletedOn returns the number of habits completed on the given day.
func (c CompletionRecord) CompletedOn(day string) int {
	count := 0
	for _, done := range c[day] {
		if done {
			count++
		}
	}
	return count
}

// Total returns the number of completed habits across all recorded days.
func (c CompletionRecord) Total() int {
	total := 0
	for day := range c {
		total += c.CompletedOn(day)
	}
	return total
}

// Clone returns a deep copy of the record.
func (c CompletionRecord) Clone() CompletionRecord {
	out := make(CompletionRecord, len(c))
	for day, habits := range c {
		m := make(map[string]bool, len(habits))
		for id, done := range habits {
			m[id] = done
		}
		out[day] = m
	}
	return out
}

// UserProgress is the per-user habit document. It is read from the store
// at session start and written back as one unit after every mutation.
// Invariants: BestStreak >= Streak, and TotalCompleted equals the sum of
// true values across all days in Completions.
type UserProgress struct {
	UserID         int64             `json:"userId"`
	Completions    CompletionRecord  `json:"habits"`
	CustomHabits   []HabitDefinition `json:"customHabits,omitempty"`
	Streak         int               `json:"streak"`
	BestStreak     int               `json:"bestStreak"`
	TotalCompleted int               `json:"totalHabitsCompleted"`
	Achievements   []string          `json:"achievements,omitempty"`
	Score          int               `json:"leaderboardScore,omitempty"`
	LastUpdate     time.Time         `json:"lastUpdate"`
}

// NewUserProgress returns an empty progress record for a user.
func NewUserProgress(userID int64) *UserProgress {
	return &UserProgress{
		UserID:      userID,
		Completions: make(CompletionRecord),
		LastUpdate:  time.Now(),
	}
}

// ActiveHabits returns the user's custom habit set, or the default set if
// none has been configured.
func (p *UserProgress) ActiveHabits() []HabitDefinition {
	if len(p.CustomHabits) > 0 {
		return p.CustomHabits
	}
	return DefaultHabits
}

// HasAchievement reports whether the given achievement has been unlocked.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
