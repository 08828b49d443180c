package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipbook/models"
	"tipbook/repository/testutil"
	"tipbook/service"
)

func TestPredictionRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	t.Run("not found", func(t *testing.T) {
		prediction, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, prediction)
	})

	t.Run("round trip", func(t *testing.T) {
		original := testutil.CreateTestPrediction(admin.ID,
			decimal.RequireFromString("25.50"), decimal.RequireFromString("2.35"))
		err := repo.Create(ctx, original)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, original.ID)
		assert.False(t, original.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, original.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, models.PredictionKindSingle, got.Kind)
		assert.True(t, got.Stake.Equal(decimal.RequireFromString("25.50")))
		assert.True(t, got.TotalOdds.Equal(decimal.RequireFromString("2.35")))
		assert.Equal(t, models.PredictionStatusPending, got.Status)
		assert.Nil(t, got.Profit)
		assert.Nil(t, got.SettledAt)
		assert.Equal(t, admin.ID, got.CreatedBy)
	})
}

func TestPredictionRepository_UpdateSettlement(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	prediction := testutil.CreateTestPrediction(admin.ID,
		decimal.NewFromInt(10), decimal.RequireFromString("3.00"))
	require.NoError(t, repo.Create(ctx, prediction))

	profit := decimal.RequireFromString("20.00")
	now := time.Now().UTC().Truncate(time.Millisecond)
	prediction.Status = models.PredictionStatusWon
	prediction.Profit = &profit
	prediction.SettledAt = &now

	require.NoError(t, repo.UpdateSettlement(ctx, prediction))

	got, err := repo.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, models.PredictionStatusWon, got.Status)
	require.NotNil(t, got.Profit)
	assert.True(t, got.Profit.Equal(profit))
	require.NotNil(t, got.SettledAt)
	assert.WithinDuration(t, now, *got.SettledAt, time.Second)
}

func TestPredictionRepository_List(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	public := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	public.Visibility = models.VisibilityPublic
	require.NoError(t, repo.Create(ctx, public))

	restricted := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(20), decimal.NewFromInt(3))
	require.NoError(t, repo.Create(ctx, restricted))

	t.Run("public only", func(t *testing.T) {
		predictions, err := repo.List(ctx, service.PredictionFilter{
			Visibilities: []models.Visibility{models.VisibilityPublic},
		})
		require.NoError(t, err)
		require.Len(t, predictions, 1)
		assert.Equal(t, public.ID, predictions[0].ID)
	})

	t.Run("all visibilities", func(t *testing.T) {
		predictions, err := repo.List(ctx, service.PredictionFilter{
			Visibilities: []models.Visibility{models.VisibilityPublic, models.VisibilityRestricted},
		})
		require.NoError(t, err)
		assert.Len(t, predictions, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		profit := decimal.NewFromInt(-20)
		now := time.Now().UTC()
		restricted.Status = models.PredictionStatusLost
		restricted.Profit = &profit
		restricted.SettledAt = &now
		require.NoError(t, repo.UpdateSettlement(ctx, restricted))

		pending := models.PredictionStatusPending
		predictions, err := repo.List(ctx, service.PredictionFilter{
			Status:       &pending,
			Visibilities: []models.Visibility{models.VisibilityPublic, models.VisibilityRestricted},
		})
		require.NoError(t, err)
		require.Len(t, predictions, 1)
		assert.Equal(t, public.ID, predictions[0].ID)
	})

	t.Run("settled set", func(t *testing.T) {
		settled, err := repo.GetSettled(ctx)
		require.NoError(t, err)
		require.Len(t, settled, 1)
		assert.Equal(t, restricted.ID, settled[0].ID)
	})
}

func TestPredictionRepository_Delete(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, repo.Create(ctx, prediction))

	leg := testutil.CreateTestMatch(prediction.ID, decimal.NewFromInt(2))
	require.NoError(t, matchRepo.CreateBatch(ctx, []*models.Match{leg}))

	require.NoError(t, repo.Delete(ctx, prediction.ID))

	got, err := repo.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// legs go with the prediction
	legs, err := matchRepo.GetByPrediction(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Empty(t, legs)

	// deleting again reports the missing row
	assert.Error(t, repo.Delete(ctx, prediction.ID))
}

func TestPredictionRepository_UpdateVisibility(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, repo.Create(ctx, prediction))

	require.NoError(t, repo.UpdateVisibility(ctx, prediction.ID, models.VisibilityPublic))

	got, err := repo.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, got.Visibility)
}
