package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/database"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// UserRepository handles user and session data access
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and returns it
func (r *UserRepository) CreateUser(email, passwordHash, displayName string) (*models.User, error) {
	now := time.Now()
	id, err := r.db.ExecReturningID(
		"INSERT INTO users (email, password_hash, display_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		email, passwordHash, displayName, now, now,
	)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetUserByEmail returns the user with the given email, or nil if none exists
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow(
		"SELECT id, email, password_hash, display_name, oauth_provider, oauth_subject, created_at, updated_at FROM users WHERE email = ?",
		email,
	)
	return scanUser(row)
}

// GetUserByID returns the user with the given ID, or nil if none exists
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	row := r.db.QueryRow(
		"SELECT id, email, password_hash, display_name, oauth_provider, oauth_subject, created_at, updated_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

// GetUserByOAuth returns the user linked to an OAuth identity, or nil
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	row := r.db.QueryRow(
		"SELECT id, email, password_hash, display_name, oauth_provider, oauth_subject, created_at, updated_at FROM users WHERE oauth_provider = ? AND oauth_subject = ?",
		provider, subject,
	)
	return scanUser(row)
}

// LinkOAuthProvider attaches an OAuth identity to an existing user
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	_, err := r.db.Exec(
		"UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = ? WHERE id = ?",
		provider, subject, time.Now(), userID,
	)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateSession inserts a new session row
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	now := time.Now()
	_, err := r.db.Exec(
		"INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)",
		sessionID, userID, expiresAt, now,
	)
	if err != nil {
		return nil, err
	}
	return &models.Session{ID: sessionID, UserID: userID, ExpiresAt: expiresAt, CreatedAt: now}, nil
}

// GetSession returns a session by ID, or nil if none exists
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRow(
		"SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session row
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry
func (r *UserRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}
