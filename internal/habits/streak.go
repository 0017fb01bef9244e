// Package habits contains the pure derivation rules that turn a sparse
// per-day completion record into streaks, analytics, achievements and the
// pet mood. Nothing in this package touches storage or the clock; callers
// pass the current day key explicitly.
package habits

import (
	"sort"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// CurrentStreak counts consecutive fully-completed days ending at today.
// The walk starts at today if today has any data; when today is still
// unrecorded it may anchor at yesterday instead, so an unbroken run is
// not hidden before the first completion of the day. A most recent
// recorded day older than yesterday means at least one whole day was
// missed and the streak is zero. The walk moves backwards one calendar
// day at a time; a day where fewer than habitCount habits are marked,
// including a day with no entry at all, breaks it.
//
// Historical days are judged against the habit count active now, not the
// count that was active when they were recorded.
func CurrentStreak(completions models.CompletionRecord, habitCount int, today string) int {
	if habitCount <= 0 || len(completions) == 0 {
		return 0
	}

	day := today
	if _, ok := completions[today]; !ok {
		day = latestDay(completions)
		if day != dates.AddDays(today, -1) {
			return 0
		}
	}

	streak := 0
	for completions.CompletedOn(day) == habitCount {
		streak++
		day = dates.AddDays(day, -1)
	}
	return streak
}

// BestStreak returns the larger of the stored best and the current streak.
// Applied on every recompute, it keeps the best streak non-decreasing.
func BestStreak(previousBest, currentStreak int) int {
	if currentStreak > previousBest {
		return currentStreak
	}
	return previousBest
}

// HistoricalBestStreak scans the whole record for the longest run of
// consecutive fully-completed days. Used when the derivation inputs
// change wholesale, on import and on a habit-set swap, and the stored
// best streak alone is not enough.
func HistoricalBestStreak(completions models.CompletionRecord, habitCount int) int {
	if habitCount <= 0 || len(completions) == 0 {
		return 0
	}

	days := make([]string, 0, len(completions))
	for day := range completions {
		if completions.CompletedOn(day) == habitCount {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	best, run := 0, 0
	for i, day := range days {
		if i > 0 && dates.AddDays(days[i-1], 1) == day {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// latestDay returns the most recent day key present in the record.
func latestDay(completions models.CompletionRecord) string {
	latest := ""
	for day := range completions {
		if day > latest {
			latest = day
		}
	}
	return latest
}
