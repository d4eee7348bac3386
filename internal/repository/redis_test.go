package repository

import (
	"context"
	"testing"
	"time"

	"oceanview/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisSessionRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetSession", func(t *testing.T) {
		session := &models.Session{
			Token:    "tok-123",
			UserID:   1,
			Username: "frontdesk1",
			Role:     "staff",
		}

		err := repo.SetSession(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetSession(ctx, "tok-123")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, session.UserID, got.UserID)
		assert.Equal(t, session.Username, got.Username)
		assert.False(t, got.ExpiresAt.IsZero())
	})

	t.Run("GetNonExistentSession", func(t *testing.T) {
		got, err := repo.GetSession(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearSession", func(t *testing.T) {
		session := &models.Session{Token: "tok-456", UserID: 2}
		repo.SetSession(ctx, session)

		err := repo.ClearSession(ctx, "tok-456")
		require.NoError(t, err)

		got, _ := repo.GetSession(ctx, "tok-456")
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		actor := "client-a"
		limit := 2
		window := time.Second

		allowed, err := repo.CheckRateLimit(ctx, actor, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, actor, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request exceeds the limit
		allowed, err = repo.CheckRateLimit(ctx, actor, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(window + time.Millisecond)

		allowed, err = repo.CheckRateLimit(ctx, actor, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		repo := NewRedisSessionRepository(nil, time.Hour)
		_, err := repo.GetSession(ctx, "any")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("Ping", func(t *testing.T) {
		err := Ping(ctx, client)
		assert.NoError(t, err)
	})

	t.Run("Close", func(t *testing.T) {
		err := Close(client)
		assert.NoError(t, err)
	})
}
