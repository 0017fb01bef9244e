package habits

import (
	"math"
	"sort"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// DefaultWindowDays is the analytics window used when none is given.
const DefaultWindowDays = 30

// DefaultSuccessThreshold is the fraction of active habits that makes a
// day count as successful (3 of 5 with the default set).
const DefaultSuccessThreshold = 0.6

// DayStat is one entry of the weekly series.
type DayStat struct {
	Day            string `json:"date"`
	CompletedCount int    `json:"completed"`
	Percentage     int    `json:"percentage"`
}

// HabitRate is the completion rate for a single habit over the window.
type HabitRate struct {
	HabitID   string `json:"habitId"`
	Rate      int    `json:"rate"`
	Completed int    `json:"completed"`
}

// SuccessRate returns the percentage of days in the window, ending at
// today, where at least threshold×habitCount habits were completed. Days
// with no data count as zero completions: they stay in the denominator.
func SuccessRate(completions models.CompletionRecord, habitCount, windowDays int, threshold float64, today string) int {
	if windowDays <= 0 || habitCount <= 0 {
		return 0
	}
	required := int(math.Ceil(threshold * float64(habitCount)))

	successful := 0
	for _, day := range dates.Range(today, windowDays) {
		if completions.CompletedOn(day) >= required {
			successful++
		}
	}
	return roundPercent(successful, windowDays)
}

// PerHabitRates returns, for each habit with any data in the window, the
// percentage of its recorded days on which it was completed. Habits never
// attempted in the window are omitted. The result is sorted by habit ID
// for deterministic output.
func PerHabitRates(completions models.CompletionRecord, windowDays int, today string) []HabitRate {
	type tally struct{ completed, total int }
	stats := make(map[string]*tally)

	for _, day := range dates.Range(today, windowDays) {
		for habitID, done := range completions[day] {
			t, ok := stats[habitID]
			if !ok {
				t = &tally{}
				stats[habitID] = t
			}
			t.total++
			if done {
				t.completed++
			}
		}
	}

	rates := make([]HabitRate, 0, len(stats))
	for habitID, t := range stats {
		rates = append(rates, HabitRate{
			HabitID:   habitID,
			Rate:      roundPercent(t.completed, t.total),
			Completed: t.completed,
		})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].HabitID < rates[j].HabitID })
	return rates
}

// WeeklySeries returns exactly seven entries, oldest to newest, ending at
// today.
func WeeklySeries(completions models.CompletionRecord, habitCount int, today string) []DayStat {
	series := make([]DayStat, 0, 7)
	for _, day := range dates.Range(today, 7) {
		completed := completions.CompletedOn(day)
		series = append(series, DayStat{
			Day:            day,
			CompletedCount: completed,
			Percentage:     roundPercent(completed, habitCount),
		})
	}
	return series
}

// roundPercent returns part/whole as a percentage rounded to the nearest
// integer, 0 when whole is zero.
func roundPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
