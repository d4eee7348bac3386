package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"oceanview/internal/database"
	"oceanview/internal/domain"
	"oceanview/internal/models"
	"oceanview/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidCredentials is returned on login with an unknown username or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

const sessionTTL = 12 * time.Hour

type UserService struct {
	repo     domain.Repository
	sessions domain.SessionRepository
	logger   *zerolog.Logger
}

func NewUserService(repo domain.Repository, sessions domain.SessionRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a staff account. Usernames are unique; a duplicate
// surfaces as database.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password, fullName, role string) (*models.User, error) {
	if err := validation.Username(username); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = "staff"
	}

	// Fast-path check for a friendly rejection; the UNIQUE constraint on
	// insert still decides races.
	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, database.ErrUsernameTaken
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashPassword(password),
		FullName:     fullName,
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login verifies credentials and opens a session.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(hashPassword(password))) != 1 {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return session, nil
}

// Logout drops the session; an unknown token is a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.ClearSession(ctx, token)
}

// SessionByToken resolves a live session, nil when absent or expired.
func (s *UserService) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
