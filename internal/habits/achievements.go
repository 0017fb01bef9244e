package habits

import "sort"

// Achievement is one milestone in the static catalog.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement int    `json:"requirement"`
}

// Achievement IDs.
const (
	AchFirstHabit      = "first_habit"
	AchPerfectDay      = "perfect_day"
	AchWeekWarrior     = "week_warrior"
	AchHabitMaster     = "habit_master"
	AchStreakLegend    = "streak_legend"
	AchConsistencyKing = "consistency_king"
)

// Catalog is the static achievement catalog. Requirements are thresholds,
// not logic: Evaluate encodes which counter each one applies to.
var Catalog = []Achievement{
	{ID: AchFirstHabit, Name: "First Step", Description: "Complete your first habit", Icon: "🌱", Requirement: 1},
	{ID: AchPerfectDay, Name: "Perfect Day", Description: "Complete all habits in one day", Icon: "⭐", Requirement: 5},
	{ID: AchWeekWarrior, Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Requirement: 7},
	{ID: AchHabitMaster, Name: "Habit Master", Description: "Complete 100 total habits", Icon: "🏆", Requirement: 100},
	{ID: AchStreakLegend, Name: "Streak Legend", Description: "Achieve a 30-day streak", Icon: "👑", Requirement: 30},
	{ID: AchConsistencyKing, Name: "Consistency King", Description: "Complete 250 total habits", Icon: "💎", Requirement: 250},
}

// CatalogByID returns the catalog entry for an ID, if present.
func CatalogByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// EvaluateAchievements maps the user's counters to the full set of
// achievement IDs they currently qualify for, sorted for determinism.
func EvaluateAchievements(totalCompleted, streak, completedToday, activeHabitCount int) []string {
	var earned []string

	if totalCompleted >= 1 {
		earned = append(earned, AchFirstHabit)
	}
	if activeHabitCount > 0 && completedToday == activeHabitCount {
		earned = append(earned, AchPerfectDay)
	}
	if streak >= 7 {
		earned = append(earned, AchWeekWarrior)
	}
	if totalCompleted >= 100 {
		earned = append(earned, AchHabitMaster)
	}
	if streak >= 30 {
		earned = append(earned, AchStreakLegend)
	}
	if totalCompleted >= 250 {
		earned = append(earned, AchConsistencyKing)
	}

	sort.Strings(earned)
	return earned
}

// NewAchievements returns the IDs present in current but not in previous.
// Call it with the pre-mutation set as previous so each threshold crossing
// is reported exactly once.
func NewAchievements(previous, current []string) []string {
	old := make(map[string]bool, len(previous))
	for _, id := range previous {
		old[id] = true
	}

	var fresh []string
	for _, id := range current {
		if !old[id] {
			fresh = append(fresh, id)
		}
	}
	return fresh
}
