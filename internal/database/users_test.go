package database

import (
	"context"
	"testing"

	"oceanview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{
		Username:     "frontdesk1",
		PasswordHash: "deadbeef",
		FullName:     "Front Desk",
		Role:         "staff",
	}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	t.Run("duplicate username", func(t *testing.T) {
		dup := &models.User{Username: "frontdesk1", PasswordHash: "cafe", FullName: "Other", Role: "staff"}
		err := db.CreateUser(ctx, dup)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("lookup by username", func(t *testing.T) {
		got, err := db.GetUserByUsername(ctx, "frontdesk1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "deadbeef", got.PasswordHash)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := db.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "frontdesk1", got.Username)
	})
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsernameExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	exists, err := db.UsernameExists(ctx, "manager")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.CreateUser(ctx, &models.User{
		Username: "manager", PasswordHash: "x", FullName: "M", Role: "manager",
	}))

	exists, err = db.UsernameExists(ctx, "manager")
	require.NoError(t, err)
	assert.True(t, exists)
}
