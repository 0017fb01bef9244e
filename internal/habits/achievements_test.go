package habits

import (
	"reflect"
	"testing"
)

func TestEvaluateAchievements(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		streak         int
		completedToday int
		habitCount     int
		expected       []string
	}{
		{
			name:     "nothing earned",
			expected: nil,
		},
		{
			name:     "first completion",
			total:    1,
			expected: []string{AchFirstHabit},
		},
		{
			name:           "perfect day with custom three-habit set",
			total:          3,
			completedToday: 3,
			habitCount:     3,
			expected:       []string{AchFirstHabit, AchPerfectDay},
		},
		{
			name:           "partial day is not perfect",
			total:          4,
			completedToday: 4,
			habitCount:     5,
			expected:       []string{AchFirstHabit},
		},
		{
			name:     "seven day streak",
			total:    35,
			streak:   7,
			expected: []string{AchFirstHabit, AchWeekWarrior},
		},
		{
			name:     "thirty day streak stacks with hundred total",
			total:    150,
			streak:   30,
			expected: []string{AchFirstHabit, AchHabitMaster, AchStreakLegend, AchWeekWarrior},
		},
		{
			name:     "everything at once",
			total:    250,
			streak:   30,
			habitCount: 5,
			completedToday: 5,
			expected: []string{AchConsistencyKing, AchFirstHabit, AchHabitMaster, AchPerfectDay, AchStreakLegend, AchWeekWarrior},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateAchievements(tt.total, tt.streak, tt.completedToday, tt.habitCount)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("EvaluateAchievements() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewAchievements(t *testing.T) {
	tests := []struct {
		name     string
		old      []string
		current  []string
		expected []string
	}{
		{
			name:     "no change",
			old:      []string{AchFirstHabit},
			current:  []string{AchFirstHabit},
			expected: nil,
		},
		{
			name:     "one newly unlocked",
			old:      []string{AchFirstHabit},
			current:  []string{AchFirstHabit, AchWeekWarrior},
			expected: []string{AchWeekWarrior},
		},
		{
			name:     "from empty",
			old:      nil,
			current:  []string{AchFirstHabit},
			expected: []string{AchFirstHabit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAchievements(tt.old, tt.current)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NewAchievements() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCatalogByID(t *testing.T) {
	a, ok := CatalogByID(AchWeekWarrior)
	if !ok {
		t.Fatal("week_warrior missing from catalog")
	}
	if a.Requirement != 7 {
		t.Errorf("week_warrior requirement = %d, want 7", a.Requirement)
	}
	if _, ok := CatalogByID("no_such_badge"); ok {
		t.Error("unknown ID should not resolve")
	}
}
