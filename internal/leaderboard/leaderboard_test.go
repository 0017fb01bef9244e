package leaderboard

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		streak   int
		total    int
		expected int
	}{
		{"zeroes", 0, 0, 0},
		{"streak only", 7, 0, 70},
		{"total only", 0, 42, 42},
		{"combined", 10, 20, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.streak, tt.total); got != tt.expected {
				t.Errorf("Score(%d, %d) = %d, want %d", tt.streak, tt.total, got, tt.expected)
			}
		})
	}
}

func TestRankTieBreaks(t *testing.T) {
	// Two users tied at score 120 with streaks 10 and 8, a third at 95:
	// the tie resolves by descending streak, the 95 user comes last.
	entries := []Entry{
		{UserID: 1, DisplayName: "A", Streak: 8, TotalCompleted: 40},  // 120
		{UserID: 2, DisplayName: "B", Streak: 10, TotalCompleted: 20}, // 120
		{UserID: 3, DisplayName: "C", Streak: 9, TotalCompleted: 5},   // 95
	}

	ranked := Rank(entries)

	if ranked[0].UserID != 2 || ranked[0].Rank != 1 {
		t.Errorf("rank 1: got user %d rank %d, want user 2 rank 1", ranked[0].UserID, ranked[0].Rank)
	}
	if ranked[1].UserID != 1 || ranked[1].Rank != 2 {
		t.Errorf("rank 2: got user %d rank %d, want user 1 rank 2", ranked[1].UserID, ranked[1].Rank)
	}
	if ranked[2].UserID != 3 || ranked[2].Rank != 3 {
		t.Errorf("rank 3: got user %d rank %d, want user 3 rank 3", ranked[2].UserID, ranked[2].Rank)
	}
}

func TestRankFullTieFallsBackToUserID(t *testing.T) {
	entries := []Entry{
		{UserID: 9, Streak: 5, TotalCompleted: 10},
		{UserID: 3, Streak: 5, TotalCompleted: 10},
	}

	ranked := Rank(entries)
	if ranked[0].UserID != 3 {
		t.Errorf("equal score and streak should order by ascending user ID, got %d first", ranked[0].UserID)
	}
}

func TestRankEmptyAndPartialInput(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("ranking no entries should yield none, got %v", got)
	}

	// A partial snapshot is ranked as-is, no error path.
	single := Rank([]Entry{{UserID: 7, Streak: 1, TotalCompleted: 1}})
	if len(single) != 1 || single[0].Rank != 1 {
		t.Errorf("single entry should rank 1, got %+v", single)
	}
}
