package service

import (
	"context"
	"io"
	"testing"

	"oceanview/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRoomService(repo *mockRepo) *RoomService {
	logger := zerolog.New(io.Discard)
	return NewRoomService(repo, &logger)
}

func TestRoomService_AvailableCount(t *testing.T) {
	repo := new(mockRepo)
	svc := newRoomService(repo)
	ctx := context.Background()

	t.Run("valid type", func(t *testing.T) {
		repo.On("GetAvailableRoomCount", ctx, models.RoomTypeSuite).Return(2, nil).Once()

		count, err := svc.AvailableCount(ctx, "Suite")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("unknown type is zero, not an error", func(t *testing.T) {
		count, err := svc.AvailableCount(ctx, "Penthouse")
		require.NoError(t, err)
		assert.Zero(t, count)
		repo.AssertNotCalled(t, "GetAvailableRoomCount", ctx, models.RoomType("Penthouse"))
	})
}

func TestRoomService_Types(t *testing.T) {
	repo := new(mockRepo)
	svc := newRoomService(repo)
	ctx := context.Background()

	repo.On("GetRoomTypes", ctx).Return([]string{"Double", "Single"}, nil).Once()

	types, err := svc.Types(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Double", "Single"}, types)
	repo.AssertExpectations(t)
}

func TestRoomService_Seed(t *testing.T) {
	repo := new(mockRepo)
	svc := newRoomService(repo)
	ctx := context.Background()

	rooms := []models.Room{
		{RoomNumber: "101", RoomType: models.RoomTypeSingle, RateCents: 8000},
		{RoomNumber: "201", RoomType: models.RoomTypeDouble, RateCents: 12000},
	}
	repo.On("UpsertRoom", ctx, mock.AnythingOfType("*models.Room")).Return(nil).Twice()

	require.NoError(t, svc.Seed(ctx, rooms))
	repo.AssertExpectations(t)
}
