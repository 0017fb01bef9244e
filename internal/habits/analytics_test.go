package habits

import (
	"testing"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		record     models.CompletionRecord
		habitCount int
		windowDays int
		threshold  float64
		expected   int
	}{
		{
			name:       "empty record",
			record:     models.CompletionRecord{},
			habitCount: 5,
			windowDays: 30,
			threshold:  0.6,
			expected:   0,
		},
		{
			name: "three of five counts as a successful day in a window of one",
			record: models.CompletionRecord{
				testToday: {"water": true, "steps": true, "sleep": true},
			},
			habitCount: 5,
			windowDays: 1,
			threshold:  0.6,
			expected:   100,
		},
		{
			name: "two of five misses the 60 percent bar",
			record: models.CompletionRecord{
				testToday: {"water": true, "steps": true},
			},
			habitCount: 5,
			windowDays: 1,
			threshold:  0.6,
			expected:   0,
		},
		{
			name:       "missing days stay in the denominator",
			record:     fullDays(5, testToday, "2026-03-13", "2026-03-12"),
			habitCount: 5,
			windowDays: 10,
			threshold:  0.6,
			expected:   30, // 3 successful of 10
		},
		{
			name: "false values are not completions",
			record: models.CompletionRecord{
				testToday: {"water": false, "steps": false, "sleep": true},
			},
			habitCount: 5,
			windowDays: 1,
			threshold:  0.6,
			expected:   0,
		},
		{
			name:       "zero window",
			record:     fullDays(5, testToday),
			habitCount: 5,
			windowDays: 0,
			threshold:  0.6,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuccessRate(tt.record, tt.habitCount, tt.windowDays, tt.threshold, testToday)
			if got != tt.expected {
				t.Errorf("SuccessRate() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestPerHabitRates(t *testing.T) {
	record := models.CompletionRecord{
		testToday:    {"water": true, "steps": true},
		"2026-03-13": {"water": true, "steps": false},
		"2026-03-12": {"water": true},
	}

	rates := PerHabitRates(record, 30, testToday)
	if len(rates) != 2 {
		t.Fatalf("expected 2 habits with data, got %d", len(rates))
	}

	// Sorted by habit ID: steps before water
	if rates[0].HabitID != "steps" || rates[1].HabitID != "water" {
		t.Fatalf("unexpected order: %v", rates)
	}
	if rates[0].Rate != 50 {
		t.Errorf("steps rate = %d, want 50", rates[0].Rate)
	}
	if rates[1].Rate != 100 {
		t.Errorf("water rate = %d, want 100", rates[1].Rate)
	}
	if rates[1].Completed != 3 {
		t.Errorf("water completed = %d, want 3", rates[1].Completed)
	}
}

func TestPerHabitRatesOmitsHabitsOutsideWindow(t *testing.T) {
	record := models.CompletionRecord{
		"2020-01-01": {"water": true},
	}
	if rates := PerHabitRates(record, 7, testToday); len(rates) != 0 {
		t.Errorf("expected no habits in window, got %v", rates)
	}
}

func TestWeeklySeries(t *testing.T) {
	record := models.CompletionRecord{
		testToday:    {"water": true, "steps": true, "sleep": true},
		"2026-03-10": {"water": true},
	}

	series := WeeklySeries(record, 5, testToday)
	if len(series) != 7 {
		t.Fatalf("expected exactly 7 entries, got %d", len(series))
	}
	if series[0].Day != "2026-03-08" {
		t.Errorf("first entry = %s, want 2026-03-08", series[0].Day)
	}
	if series[6].Day != testToday {
		t.Errorf("last entry = %s, want %s", series[6].Day, testToday)
	}
	if series[6].CompletedCount != 3 || series[6].Percentage != 60 {
		t.Errorf("today: got %d completed / %d%%, want 3 / 60%%", series[6].CompletedCount, series[6].Percentage)
	}
	if series[2].CompletedCount != 1 || series[2].Percentage != 20 {
		t.Errorf("2026-03-10: got %d completed / %d%%, want 1 / 20%%", series[2].CompletedCount, series[2].Percentage)
	}
	if series[1].CompletedCount != 0 || series[1].Percentage != 0 {
		t.Errorf("empty day should be zero, got %+v", series[1])
	}
}
