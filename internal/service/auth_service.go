package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/repository"
	"github.com/Kishori-12/fitstreak-ai/internal/security"
	"github.com/Kishori-12/fitstreak-ai/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles authentication business logic. Tokens issued to
// clients are JWTs wrapping a server-side session ID, so a logout or
// session cleanup revokes the token immediately.
type AuthService struct {
	userRepo        *repository.UserRepository
	progressRepo    *repository.ProgressRepository
	sessionDuration time.Duration
	tokenSecret     string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, sessionDuration time.Duration, tokenSecret string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		sessionDuration: sessionDuration,
		tokenSecret:     tokenSecret,
	}
}

// Register creates a new user account with an empty progress document
func (s *AuthService) Register(email, password, displayName string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed an empty progress document so the first load never races a
	// concurrent mutation. A failure here is recoverable: the document
	// is created lazily on first load.
	if err := s.progressRepo.Save(models.NewUserProgress(user.ID)); err != nil {
		log.Printf("Warning: failed to seed progress for user %d: %v", user.ID, err)
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token for the new session
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	return s.startSession(user)
}

func (s *AuthService) startSession(user *models.User) (string, *models.User, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := security.IssueToken(s.tokenSecret, session.ID, user.ID, expiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// ValidateToken checks a bearer token and returns the associated user
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	sessionID, _, err := security.ParseToken(s.tokenSecret, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.ValidateSession(sessionID)
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout revokes the session behind a bearer token
func (s *AuthService) Logout(token string) error {
	sessionID, _, err := security.ParseToken(s.tokenSecret, token)
	if err != nil {
		// Already unusable, nothing to revoke
		return nil
	}
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a user from an OAuth identity and
// returns a bearer token.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (string, *models.User, error) {
	if provider == "" || subject == "" {
		return "", nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return "", nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return "", nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthProvider != "" && existingUser.OAuthProvider != provider {
				return "", nil, ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existingUser.ID, provider, subject); err != nil {
				return "", nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existingUser
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			// OAuth accounts never use a password, but the column is
			// NOT NULL, so store a hash of random data.
			randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return "", nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			newUser, err := s.userRepo.CreateUser(email, randomPasswordHash, name)
			if err != nil {
				return "", nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			if err := s.userRepo.LinkOAuthProvider(newUser.ID, provider, subject); err != nil {
				return "", nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = newUser

			if err := s.progressRepo.Save(models.NewUserProgress(user.ID)); err != nil {
				log.Printf("Warning: failed to seed progress for user %d: %v", user.ID, err)
			}
		}
	}

	return s.startSession(user)
}
