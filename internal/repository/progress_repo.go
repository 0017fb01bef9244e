package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Kishori-12/fitstreak-ai/internal/database"
	"github.com/Kishori-12/fitstreak-ai/internal/leaderboard"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// ProgressRepository persists per-user habit documents. The completion
// map, custom habit set and achievement list are stored as JSON; the
// derived counters are real columns so the leaderboard can be read
// without parsing every document.
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the progress document for a user, or nil if none exists
func (r *ProgressRepository) Get(userID int64) (*models.UserProgress, error) {
	var (
		p            models.UserProgress
		completions  string
		customHabits sql.NullString
		achievements string
	)

	err := r.db.QueryRow(
		"SELECT user_id, completions, custom_habits, streak, best_streak, total_completed, achievements, score, last_update FROM user_progress WHERE user_id = ?",
		userID,
	).Scan(&p.UserID, &completions, &customHabits, &p.Streak, &p.BestStreak, &p.TotalCompleted, &achievements, &p.Score, &p.LastUpdate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(completions), &p.Completions); err != nil {
		return nil, fmt.Errorf("corrupt completions document for user %d: %w", userID, err)
	}
	if customHabits.Valid && customHabits.String != "" {
		if err := json.Unmarshal([]byte(customHabits.String), &p.CustomHabits); err != nil {
			return nil, fmt.Errorf("corrupt habit set for user %d: %w", userID, err)
		}
	}
	if achievements != "" {
		if err := json.Unmarshal([]byte(achievements), &p.Achievements); err != nil {
			return nil, fmt.Errorf("corrupt achievements for user %d: %w", userID, err)
		}
	}
	if p.Completions == nil {
		p.Completions = make(models.CompletionRecord)
	}
	return &p, nil
}

// Save writes the whole document back as one unit, inserting the row if
// it does not exist yet.
func (r *ProgressRepository) Save(p *models.UserProgress) error {
	completions, err := json.Marshal(p.Completions)
	if err != nil {
		return fmt.Errorf("failed to encode completions: %w", err)
	}
	achievements, err := json.Marshal(p.Achievements)
	if err != nil {
		return fmt.Errorf("failed to encode achievements: %w", err)
	}

	var customHabits interface{}
	if len(p.CustomHabits) > 0 {
		encoded, err := json.Marshal(p.CustomHabits)
		if err != nil {
			return fmt.Errorf("failed to encode habit set: %w", err)
		}
		customHabits = string(encoded)
	}

	result, err := r.db.Exec(
		"UPDATE user_progress SET completions = ?, custom_habits = ?, streak = ?, best_streak = ?, total_completed = ?, achievements = ?, score = ?, last_update = ? WHERE user_id = ?",
		string(completions), customHabits, p.Streak, p.BestStreak, p.TotalCompleted, string(achievements), p.Score, p.LastUpdate, p.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO user_progress (user_id, completions, custom_habits, streak, best_streak, total_completed, achievements, score, last_update) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.UserID, string(completions), customHabits, p.Streak, p.BestStreak, p.TotalCompleted, string(achievements), p.Score, p.LastUpdate,
	)
	return err
}

// ListForLeaderboard returns the counters needed to rank users, limited
// to users who opted into the leaderboard. Missing settings rows count
// as opted in.
func (r *ProgressRepository) ListForLeaderboard() ([]leaderboard.Entry, error) {
	rows, err := r.db.Query(`
		SELECT p.user_id, u.display_name, p.streak, p.total_completed
		FROM user_progress p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN user_settings s ON s.user_id = p.user_id
		WHERE s.user_id IS NULL OR s.show_in_leaderboard = ?`,
		true,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Streak, &e.TotalCompleted); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateRank writes a cached rank for one user. Rank is derived data: a
// failed or partial write self-heals on the next refresh cycle.
func (r *ProgressRepository) UpdateRank(userID int64, rank, score int) error {
	_, err := r.db.Exec(
		"UPDATE user_progress SET board_rank = ?, score = ? WHERE user_id = ?",
		rank, score, userID,
	)
	return err
}
