package service

import (
	"context"
	"io"
	"testing"
	"time"

	"oceanview/internal/database"
	"oceanview/internal/models"
	"oceanview/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(repo *mockRepo, sessions *mockSessions) *UserService {
	logger := zerolog.New(io.Discard)
	return NewUserService(repo, sessions, &logger)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo, new(mockSessions))

		repo.On("UsernameExists", ctx, "frontdesk1").Return(false, nil).Once()
		repo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			// password is stored hashed, never verbatim
			return u.Username == "frontdesk1" && u.PasswordHash != "secret1" && len(u.PasswordHash) == 64
		})).Return(nil).Once()

		user, err := svc.Register(ctx, "frontdesk1", "secret1", "Front Desk", "")
		require.NoError(t, err)
		assert.Equal(t, "staff", user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("bad username", func(t *testing.T) {
		svc := newUserService(new(mockRepo), new(mockSessions))
		_, err := svc.Register(ctx, "a!", "secret1", "", "")
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "username", verr.Field)
	})

	t.Run("short password", func(t *testing.T) {
		svc := newUserService(new(mockRepo), new(mockSessions))
		_, err := svc.Register(ctx, "frontdesk1", "abc", "", "")
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Field)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo, new(mockSessions))
		repo.On("UsernameExists", ctx, "frontdesk1").Return(true, nil).Once()

		_, err := svc.Register(ctx, "frontdesk1", "secret1", "", "")
		assert.ErrorIs(t, err, database.ErrUsernameTaken)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate lost race", func(t *testing.T) {
		// Another registration lands between the existence check and the
		// insert; the UNIQUE constraint still wins.
		repo := new(mockRepo)
		svc := newUserService(repo, new(mockSessions))
		repo.On("UsernameExists", ctx, "frontdesk1").Return(false, nil).Once()
		repo.On("CreateUser", ctx, mock.Anything).Return(database.ErrUsernameTaken).Once()

		_, err := svc.Register(ctx, "frontdesk1", "secret1", "", "")
		assert.ErrorIs(t, err, database.ErrUsernameTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	stored := &models.User{
		ID:           1,
		Username:     "frontdesk1",
		PasswordHash: hashPassword("secret1"),
		Role:         "staff",
	}

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		svc := newUserService(repo, sessions)

		repo.On("GetUserByUsername", ctx, "frontdesk1").Return(stored, nil).Once()
		sessions.On("SetSession", ctx, mock.AnythingOfType("*models.Session")).Return(nil).Once()

		session, err := svc.Login(ctx, "frontdesk1", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, int64(1), session.UserID)
		assert.True(t, session.ExpiresAt.After(time.Now()))
		sessions.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo, new(mockSessions))
		repo.On("GetUserByUsername", ctx, "frontdesk1").Return(stored, nil).Once()

		_, err := svc.Login(ctx, "frontdesk1", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo, new(mockSessions))
		repo.On("GetUserByUsername", ctx, "ghost").Return(nil, database.ErrNotFound).Once()

		_, err := svc.Login(ctx, "ghost", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_SessionByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("live session", func(t *testing.T) {
		sessions := new(mockSessions)
		svc := newUserService(new(mockRepo), sessions)
		session := &models.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
		sessions.On("GetSession", ctx, "tok").Return(session, nil).Once()

		got, err := svc.SessionByToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("expired session", func(t *testing.T) {
		sessions := new(mockSessions)
		svc := newUserService(new(mockRepo), sessions)
		session := &models.Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
		sessions.On("GetSession", ctx, "tok").Return(session, nil).Once()

		got, err := svc.SessionByToken(ctx, "tok")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing session", func(t *testing.T) {
		sessions := new(mockSessions)
		svc := newUserService(new(mockRepo), sessions)
		sessions.On("GetSession", ctx, "missing").Return(nil, nil).Once()

		got, err := svc.SessionByToken(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
