// Package leaderboard derives scores and ranks from user progress
// snapshots. It only defines the formula and ordering; fetching the
// snapshots is the caller's job, and a partial snapshot is ranked as-is.
package leaderboard

import "sort"

// Entry is one ranked row. It is derived and ephemeral: a stored rank is
// only a cache and is always re-derivable.
type Entry struct {
	UserID         int64  `json:"userId"`
	DisplayName    string `json:"displayName"`
	Streak         int    `json:"streak"`
	TotalCompleted int    `json:"totalHabitsCompleted"`
	Score          int    `json:"score"`
	Rank           int    `json:"rank"`
}

// Score combines streak and total completions into a sortable score.
// The weights are a default, not an API contract.
func Score(streak, totalCompleted int) int {
	return streak*10 + totalCompleted
}

// Rank sorts entries by descending score, then descending streak, then
// ascending user ID, and assigns 1-based ranks. The input slice is
// modified in place and returned.
func Rank(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Score = Score(entries[i].Streak, entries[i].TotalCompleted)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Streak != b.Streak {
			return a.Streak > b.Streak
		}
		return a.UserID < b.UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
